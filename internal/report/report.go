// Package report classifies application errors by category and severity,
// routes them to per-category handlers and derives the notification shown to
// the player.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type Category string

const (
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryStorage    Category = "storage"
	CategoryNetwork    Category = "network"
	CategoryInternal   Category = "internal"
)

// Status returns the HTTP status used when an error of this category reaches
// a client.
func (c Category) Status() int {
	switch c {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryStorage:
		return http.StatusServiceUnavailable
	case CategoryNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error is a categorized application error. UserMessage is safe to show to a
// player; Message is for logs.
type Error struct {
	Category    Category
	Severity    Severity
	Message     string
	UserMessage string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(cat Category, sev Severity, msg, userMsg string) *Error {
	return &Error{Category: cat, Severity: sev, Message: msg, UserMessage: userMsg}
}

func Wrap(err error, cat Category, sev Severity, msg string) *Error {
	return &Error{Category: cat, Severity: sev, Message: msg, Err: err}
}

// As extracts an *Error from err. Unclassified errors become internal errors.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, CategoryInternal, SeverityError, "unexpected error")
}

func IsCategory(err error, cat Category) bool {
	var e *Error
	return errors.As(err, &e) && e.Category == cat
}

type NotificationKind string

const (
	NotifyToast NotificationKind = "toast"
	NotifyModal NotificationKind = "modal"
)

// Notification is what the client should display for an error.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Severity string           `json:"severity"`
	Message  string           `json:"message"`
}

const genericUserMessage = "エラーが発生しました。しばらくしてから再度お試しください。"

// NotificationFor derives the client notification: errors and worse open a
// modal, lower severities a toast.
func NotificationFor(e *Error) Notification {
	n := Notification{Kind: NotifyToast, Severity: e.Severity.String(), Message: e.UserMessage}
	if e.Severity >= SeverityError {
		n.Kind = NotifyModal
	}
	if n.Message == "" {
		n.Message = genericUserMessage
	}
	return n
}
