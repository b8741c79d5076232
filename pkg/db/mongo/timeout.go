package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds a repository call. Inside a transaction the session
// context is returned unchanged with a no-op cancel, since wrapping a
// SessionContext detaches the call from its transaction.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}

	return context.WithTimeout(ctx, timeout)
}

// NowMillis is the timestamp format stored on documents.
func NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
