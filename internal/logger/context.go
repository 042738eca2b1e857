package logger

import (
	"context"
)

type ctxKeyEntry struct{}

// ContextWith returns a context that carries the details,
// and every log call made with the returned context includes them.
// On key collision the details given here win over the ones already in ctx,
// and the details of the log call itself win over both.
func ContextWith(ctx context.Context, ds ...LoggingDetail) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(ds) == 0 {
		return ctx
	}
	entry := make(logEntry)
	for _, d := range ds {
		if d != nil {
			d.addTo(entry)
		}
	}
	if parent, ok := ctx.Value(ctxKeyEntry{}).(logEntry); ok {
		entry.Merge(parent)
	}
	return context.WithValue(ctx, ctxKeyEntry{}, entry)
}

// getLoggingDetailsFromContext returns a copy of the details held by ctx, so the caller can extend it.
func getLoggingDetailsFromContext(ctx context.Context) logEntry {
	d := make(logEntry)
	if ctx == nil {
		return d
	}
	if entry, ok := ctx.Value(ctxKeyEntry{}).(logEntry); ok {
		for k, v := range entry {
			d[k] = v
		}
	}
	return d
}
