// Package requestctx carries per-request values between middleware and page handlers.
package requestctx

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type key int

const (
	loggerKey key = iota
	traceKey
	labelsKey
)

var noopLogger = zap.NewNop()

// TraceInfo is the Cloud Trace identity of a request.
type TraceInfo struct {
	TraceID   string
	SpanID    string
	Sampled   bool
	ProjectID string
}

// Resource returns the Cloud Logging trace resource, or "" without a project.
func (t TraceInfo) Resource() string {
	if t.ProjectID == "" || t.TraceID == "" {
		return ""
	}
	return "projects/" + t.ProjectID + "/traces/" + t.TraceID
}

// Labels are filled in by handlers after routing and read back by the access log.
type Labels struct {
	mu       sync.Mutex
	page     string
	navEvent string
}

// Page is the name of the rendered page, if any.
func (l *Labels) Page() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// NavEvent is the navigation event replayed by the nav fragment, if any.
func (l *Labels) NavEvent() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.navEvent
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger is the logger handed out when none was stored.
func NoopLogger() *zap.Logger { return noopLogger }

func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	return context.WithValue(ctx, traceKey, info)
}

func Trace(ctx context.Context) (TraceInfo, bool) {
	info, ok := ctx.Value(traceKey).(TraceInfo)
	return info, ok
}

// WithLabels attaches an empty label set and returns it.
func WithLabels(ctx context.Context) (context.Context, *Labels) {
	labels := &Labels{}
	return context.WithValue(ctx, labelsKey, labels), labels
}

// SetPage records the page name; a no-op when no label set is attached.
func SetPage(ctx context.Context, name string) {
	if labels, ok := ctx.Value(labelsKey).(*Labels); ok {
		labels.mu.Lock()
		labels.page = name
		labels.mu.Unlock()
	}
}

// SetNavEvent records the nav fragment event; a no-op when no label set is attached.
func SetNavEvent(ctx context.Context, event string) {
	if labels, ok := ctx.Value(labelsKey).(*Labels); ok {
		labels.mu.Lock()
		labels.navEvent = event
		labels.mu.Unlock()
	}
}
