package observability

import (
	"context"
	"encoding/binary"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"institutonuevovallarta.mx/inva-web/internal/requestctx"
)

const cloudTraceHeader = "X-Cloud-Trace-Context"

const tracerName = "institutonuevovallarta.mx/inva-web/internal/observability"

const (
	attrRoute    = attribute.Key("http.route")
	attrStatus   = attribute.Key("http.response.status_code")
	attrPage     = attribute.Key("inva.page")
	attrNavEvent = attribute.Key("inva.nav.event")
	attrNavPath  = attribute.Key("inva.nav.path")
)

// TraceMiddleware continues the Cloud Trace context forwarded by the load
// balancer, opens a server span named after the matched route, and echoes the
// trace header so the page can be correlated in Cloud Logging.
func TraceMiddleware(projectID string) func(http.Handler) http.Handler {
	return traceMiddleware(otel.GetTracerProvider(), projectID)
}

func traceMiddleware(provider trace.TracerProvider, projectID string) func(http.Handler) http.Handler {
	tracer := provider.Tracer(tracerName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if remote, ok := parseCloudTraceContext(r.Header.Get(cloudTraceHeader)); ok {
				ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
			}

			ctx, span := tracer.Start(ctx, methodLabel(r.Method),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(requestAttributes(r)...),
			)
			defer span.End()

			info := requestctx.TraceInfo{ProjectID: projectID}
			if sc := span.SpanContext(); sc.IsValid() {
				info.TraceID = sc.TraceID().String()
				info.SpanID = sc.SpanID().String()
				info.Sampled = sc.IsSampled()
				w.Header().Set(cloudTraceHeader, formatCloudTraceHeader(sc))
			}

			recorder := newResponseRecorder(w)
			next.ServeHTTP(recorder, r.WithContext(requestctx.WithTrace(ctx, info)))

			route := routeLabel(r)
			span.SetName(methodLabel(r.Method) + " " + route)
			span.SetAttributes(attrRoute.String(route), attrStatus.Int(recorder.Status()))
		})
	}
}

// AnnotatePage tags the request span and access log with the rendered page.
func AnnotatePage(ctx context.Context, page string) {
	requestctx.SetPage(ctx, page)
	trace.SpanFromContext(ctx).SetAttributes(attrPage.String(page))
}

// AnnotateNavEvent tags the request span and access log with a replayed nav event.
func AnnotateNavEvent(ctx context.Context, event, path string) {
	requestctx.SetNavEvent(ctx, event)
	trace.SpanFromContext(ctx).SetAttributes(attrNavEvent.String(event), attrNavPath.String(path))
}

// parseCloudTraceContext reads "TRACE_ID/SPAN_ID;o=OPTIONS", where SPAN_ID is decimal.
func parseCloudTraceContext(header string) (trace.SpanContext, bool) {
	ids, options, _ := strings.Cut(strings.TrimSpace(header), ";")
	rawTrace, rawSpan, ok := strings.Cut(ids, "/")
	if !ok || len(rawTrace) != 32 {
		return trace.SpanContext{}, false
	}
	traceID, err := trace.TraceIDFromHex(rawTrace)
	if err != nil {
		return trace.SpanContext{}, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(rawSpan), 10, 64)
	if err != nil || n == 0 {
		return trace.SpanContext{}, false
	}
	var spanID trace.SpanID
	binary.BigEndian.PutUint64(spanID[:], n)

	var flags trace.TraceFlags
	if strings.TrimSpace(options) == "o=1" {
		flags = trace.FlagsSampled
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	}), true
}

func formatCloudTraceHeader(sc trace.SpanContext) string {
	spanID := sc.SpanID()
	option := "0"
	if sc.IsSampled() {
		option = "1"
	}
	return sc.TraceID().String() + "/" + strconv.FormatUint(binary.BigEndian.Uint64(spanID[:]), 10) + ";o=" + option
}

func requestAttributes(r *http.Request) []attribute.KeyValue {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", methodLabel(r.Method)),
		attribute.String("url.scheme", scheme),
		attribute.String("url.path", pathField(r.URL.Path)),
	}
	if r.Host != "" {
		attrs = append(attrs, attribute.String("server.address", r.Host))
	}
	if ua := r.UserAgent(); ua != "" {
		attrs = append(attrs, attribute.String("user_agent.original", cleanString(ua, 256)))
	}
	return attrs
}
