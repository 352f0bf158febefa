package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"institutonuevovallarta.mx/inva-web/internal/requestctx"
)

func TestRequestLoggerRecordsRoutePatternAndStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	metrics := NewCollector("test")

	r := chi.NewRouter()
	r.Use(InjectLoggerMiddleware(zap.New(core)))
	r.Use(RequestLoggerMiddleware(metrics))
	r.Get("/oferta", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oferta", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/oferta", fields["route"])
	require.EqualValues(t, 200, fields["status"])
	require.EqualValues(t, 2, fields["bytes"])

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/oferta", "200")))
}

func TestRequestLoggerEscalatesClientErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	metrics := NewCollector("test")

	r := chi.NewRouter()
	r.Use(InjectLoggerMiddleware(zap.New(core)))
	r.Use(RequestLoggerMiddleware(metrics))
	r.Get("/oferta", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.WarnLevel, entries[0].Level)
	require.Equal(t, "unmatched", entries[0].ContextMap()["route"])
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestRequestLoggerFoldsUnknownMethods(t *testing.T) {
	t.Parallel()

	metrics := NewCollector("test")
	r := chi.NewRouter()
	r.Use(RequestLoggerMiddleware(metrics))
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("BREW", "/", nil))

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("OTHER", "unmatched", "405")))
}

func TestRecoveryMiddlewareAnswers500(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestTraceMiddlewarePropagatesCloudTraceHeader(t *testing.T) {
	t.Parallel()

	const traceID = "105445aa7843bc8bf206b12000100000"
	var got requestctx.TraceInfo
	handler := TraceMiddleware("inva-prod")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = requestctx.Trace(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/contacto", nil)
	req.Header.Set(cloudTraceHeader, traceID+"/1;o=1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, traceID, got.TraceID)
	require.Equal(t, "0000000000000001", got.SpanID)
	require.True(t, got.Sampled)
	require.Equal(t, "inva-prod", got.ProjectID)
	require.True(t, strings.HasPrefix(rec.Header().Get(cloudTraceHeader), traceID+"/"))
}

func TestParseCloudTraceContextRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, header := range []string{
		"",
		"abc",
		"zz/1",
		strings.Repeat("0", 31) + "/1",
		strings.Repeat("0", 32) + "/1",
		"105445aa7843bc8bf206b12000100000/0",
		"105445aa7843bc8bf206b12000100000/abc;o=1",
	} {
		_, ok := parseCloudTraceContext(header)
		require.False(t, ok, "header %q", header)
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("not-a-level")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
}
