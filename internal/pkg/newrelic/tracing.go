package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middleware starts a transaction per request. With a nil app it is a pass-through.
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}

// FromEchoContext extracts the transaction started by Middleware
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// StartSegment creates a new segment for the given transaction
// Returns nil if transaction is not available
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// WithSegment executes fn within a segment of the request's transaction
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	if segment := StartSegment(newrelic.FromContext(ctx), segmentName); segment != nil {
		defer segment.End()
	}
	return fn()
}

// WithSegmentAndReturn executes fn within a segment and returns its value
func WithSegmentAndReturn[T any](ctx context.Context, segmentName string, fn func() (T, error)) (T, error) {
	if segment := StartSegment(newrelic.FromContext(ctx), segmentName); segment != nil {
		defer segment.End()
	}
	return fn()
}

// NewBackgroundContext carries the transaction of ctx into a context that is
// not cancelled with the request, for work that outlives it
func NewBackgroundContext(ctx context.Context) context.Context {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return context.Background()
	}
	return newrelic.NewContext(context.Background(), txn.NewGoroutine())
}
