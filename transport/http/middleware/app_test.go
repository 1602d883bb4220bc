package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"ecodash/config"
	"ecodash/infras/otel"
	otelMocks "ecodash/infras/otel/mocks"
	cacheMocks "ecodash/shared/cache/mocks"
	"ecodash/shared/constant"
	"ecodash/transport/http/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func newLimiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		count         int64
		cacheErr      error
		callCache     bool
		wantStatus    int
		wantRemaining string
	}{
		{
			name:       "disabled",
			enable:     false,
			wantStatus: http.StatusOK,
		},
		{
			name:          "under the limit",
			enable:        true,
			callCache:     true,
			count:         1,
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:          "at the limit",
			enable:        true,
			callCache:     true,
			count:         2,
			wantStatus:    http.StatusOK,
			wantRemaining: "0",
		},
		{
			name:          "over the limit",
			enable:        true,
			callCache:     true,
			count:         3,
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:       "cache unavailable",
			enable:     true,
			callCache:  true,
			cacheErr:   errors.New("connection refused"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.callCache {
				cache.EXPECT().
					Increment(gomock.Any(), "ratelimit:203.0.113.7:test-agent", 60).
					Return(tt.count, tt.cacheErr)
			}

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), newLimiterConfig(tt.enable), cache)
			handler := app.RateLimit()(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/v1/reservations/get", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")
			req.Header.Set("User-Agent", "test-agent")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_ClientFromRemoteAddr(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Increment(gomock.Any(), "ratelimit:192.0.2.1:unknown", 60).Return(int64(1), nil)

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), newLimiterConfig(true), cache)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:52100"
	req.Header.Del("User-Agent")

	rec := httptest.NewRecorder()
	app.RateLimit()(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	app := middleware.NewAppMiddleware(otel.NewWithProvider(provider), &config.Config{}, nil)

	router := chi.NewRouter()
	router.Use(app.Tracing)
	router.Get("/v1/reservations/delete/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reservations/delete/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /v1/reservations/delete/abc", spans[0].Name())

	attributes := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attributes[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, "418", attributes["http.status_code"])
	assert.Equal(t, "/v1/reservations/delete/{id}", attributes["http.route"])
}
