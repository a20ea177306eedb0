package report

import (
	"context"
	"log/slog"
	"sync"
)

// Handler processes a reported error.
type Handler interface {
	Handle(ctx context.Context, e *Error)
}

type HandlerFunc func(ctx context.Context, e *Error)

func (f HandlerFunc) Handle(ctx context.Context, e *Error) { f(ctx, e) }

// Reporter routes errors to the handlers registered for their category, then
// to the fallback handlers registered for every category.
type Reporter struct {
	mu         sync.RWMutex
	byCategory map[Category][]Handler
	all        []Handler
}

// NewReporter returns a Reporter that logs every error through logger.
func NewReporter(logger *slog.Logger) *Reporter {
	r := &Reporter{byCategory: make(map[Category][]Handler)}
	r.HandleAll(LogHandler(logger))
	return r
}

func (r *Reporter) Handle(cat Category, h Handler) {
	r.mu.Lock()
	r.byCategory[cat] = append(r.byCategory[cat], h)
	r.mu.Unlock()
}

func (r *Reporter) HandleAll(h Handler) {
	r.mu.Lock()
	r.all = append(r.all, h)
	r.mu.Unlock()
}

// Report classifies err, dispatches it and returns the notification for the
// client.
func (r *Reporter) Report(ctx context.Context, err error) Notification {
	e := As(err)

	r.mu.RLock()
	handlers := append(append([]Handler(nil), r.byCategory[e.Category]...), r.all...)
	r.mu.RUnlock()

	for _, h := range handlers {
		h.Handle(ctx, e)
	}
	return NotificationFor(e)
}

// LogHandler logs at the level implied by the error's severity.
func LogHandler(logger *slog.Logger) Handler {
	return HandlerFunc(func(ctx context.Context, e *Error) {
		attrs := []any{
			"category", string(e.Category),
			"severity", e.Severity.String(),
		}
		if e.Err != nil {
			attrs = append(attrs, "error", e.Err)
		}
		logger.Log(ctx, e.Severity.Level(), e.Message, attrs...)
	})
}
