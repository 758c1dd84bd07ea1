// Package diagnostics records failed operations for operators. Callers of
// the lending API only ever see a generic failure; the detail lands here.
package diagnostics

import (
	"context"
	"log"
	"time"

	"equiplend/internal/domain"
)

type Sink interface {
	Report(ctx context.Context, op string, err error)
}

// Entry is one recorded failure.
type Entry struct {
	Op        string    `json:"op"`
	Kind      string    `json:"kind"`
	Error     string    `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

func newEntry(ctx context.Context, op string, err error) Entry {
	return Entry{
		Op:        op,
		Kind:      string(domain.KindOf(err)),
		Error:     err.Error(),
		RequestID: RequestIDFrom(ctx),
		At:        time.Now().UTC(),
	}
}

type LogSink struct {
	logger *log.Logger
}

// NewLogSink writes to logger, or to the standard logger when nil.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	e := newEntry(ctx, op, err)
	s.logger.Printf("operation_failed op=%s kind=%s request_id=%s error=%q", e.Op, e.Kind, e.RequestID, e.Error)
}

type multi []Sink

// Multi fans a report out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	for _, s := range m {
		s.Report(ctx, op, err)
	}
}

type ctxKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
