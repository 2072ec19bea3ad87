package log

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/bookstore-catalog/internal/requestid"
)

type sellerKey struct{}

// WithSellerID attaches the authenticated seller to ctx for log enrichment.
func WithSellerID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, sellerKey{}, id)
}

// ContextHandler wraps an slog.Handler and adds request_id and, once the
// caller is authenticated, seller_id from the record's context.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if id, ok := ctx.Value(sellerKey{}).(int64); ok {
		r.AddAttrs(slog.Int64("seller_id", id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
