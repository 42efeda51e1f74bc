package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// SpanLogHandler decorates another slog handler and stamps each record
// emitted inside an active span with trace_id/span_id, so log lines can be
// joined to their traces.
type SpanLogHandler struct {
	inner slog.Handler
}

func NewSpanLogHandler(inner slog.Handler) *SpanLogHandler {
	return &SpanLogHandler{inner: inner}
}

func (h *SpanLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *SpanLogHandler) Handle(ctx context.Context, r slog.Record) error {
	sc := trace.SpanFromContext(ctx).SpanContext()

	// records logged outside a span pass through untouched
	if sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.inner.Handle(ctx, r)
}

func (h *SpanLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SpanLogHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *SpanLogHandler) WithGroup(name string) slog.Handler {
	return &SpanLogHandler{inner: h.inner.WithGroup(name)}
}
