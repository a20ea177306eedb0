package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Payload is the JSON body sent to the remote collector.
type Payload struct {
	Category  string    `json:"category"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Remote posts reports to a collector URL from a background goroutine.
// Reports are dropped when the queue is full.
type Remote struct {
	url    string
	client *http.Client
	queue  chan Payload
	logger *slog.Logger
	min    Severity
}

func NewRemote(url string, min Severity, logger *slog.Logger) *Remote {
	return &Remote{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		queue:  make(chan Payload, 64),
		logger: logger,
		min:    min,
	}
}

func (r *Remote) Handle(_ context.Context, e *Error) {
	if e.Severity < r.min {
		return
	}
	p := Payload{
		Category:  string(e.Category),
		Severity:  e.Severity.String(),
		Message:   e.Message,
		Timestamp: time.Now().UTC(),
	}
	if e.Err != nil {
		p.Error = e.Err.Error()
	}
	select {
	case r.queue <- p:
	default:
		r.logger.Warn("error report dropped, queue full", "category", p.Category)
	}
}

// Run delivers queued reports until ctx is done.
func (r *Remote) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case p := <-r.queue:
			if err := r.send(ctx, p); err != nil {
				r.logger.Warn("error report delivery failed", "error", err)
			}
		}
	}
}

func (r *Remote) send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
