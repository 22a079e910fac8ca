// Package logx contains logging middleware for slog handlers.
package logx

import (
	"context"

	"golang.org/x/exp/slog"
)

// HandleFunc is a function that handles a record.
type HandleFunc func(context.Context, slog.Record) error

// Middleware is a middleware for logging handler.
type Middleware func(HandleFunc) HandleFunc

// Chain is a chain of middleware.
type Chain struct {
	Middleware []Middleware
	slog.Handler
}

// Handle runs the chain of middleware and the handler.
func (c *Chain) Handle(ctx context.Context, rec slog.Record) error {
	h := c.Handler.Handle
	for i := len(c.Middleware) - 1; i >= 0; i-- {
		h = c.Middleware[i](h)
	}
	return h(ctx, rec)
}

// WithGroup returns a new Chain with the given group.
func (c *Chain) WithGroup(group string) slog.Handler {
	return &Chain{
		Middleware: c.Middleware,
		Handler:    c.Handler.WithGroup(group),
	}
}

// WithAttrs returns a new Chain with the given attributes.
func (c *Chain) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Chain{
		Middleware: c.Middleware,
		Handler:    c.Handler.WithAttrs(attrs),
	}
}

type runIDKey struct{}

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(parent context.Context, runID string) context.Context {
	return context.WithValue(parent, runIDKey{}, runID)
}

// RunIDFromContext returns run id from context.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey{}).(string)
	return v, ok
}

// RunID is a middleware that adds the run id from the context to the record.
func RunID() Middleware {
	return func(next HandleFunc) HandleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			if runID, ok := RunIDFromContext(ctx); ok {
				rec.AddAttrs(slog.String("run_id", runID))
			}
			return next(ctx, rec)
		}
	}
}
