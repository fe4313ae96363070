package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func requestFrom(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = remote
	return req
}

func TestRateLimit_ProClient(t *testing.T) {
	h := RateLimit(2, zap.NewNop())(okHandler)

	var codes []int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// Ein anderer Client hat ein eigenes Kontingent.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.2:5000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Antwort(t *testing.T) {
	h := RateLimit(1, zap.NewNop())(okHandler)
	h.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:2"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"zu viele anfragen"}`, rec.Body.String())
}

func TestClientLimiters_Aufraeumen(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	c := newClientLimiters(1)
	c.now = func() time.Time { return now }

	assert.True(t, c.allow("a"))
	assert.False(t, c.allow("a"))

	now = now.Add(limiterIdle + time.Second)
	assert.True(t, c.allow("b"))
	assert.NotContains(t, c.clients, "a")
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.1", clientIP(requestFrom("192.0.2.1:1234")))
	assert.Equal(t, "::1", clientIP(requestFrom("[::1]:80")))
	assert.Equal(t, "unix", clientIP(requestFrom("unix")))
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaputt")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"interner serverfehler"}`, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic abgefangen", logs.All()[0].Message)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logging(zap.New(core))(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["methode"])
	assert.Equal(t, "/api/health", fields["pfad"])
	assert.Equal(t, "10.0.0.1", fields["remote"])
	assert.EqualValues(t, 200, fields["status"])
	assert.EqualValues(t, 2, fields["bytes"])
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS([]string{"https://overol.example"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://overol.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://overol.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_FremdeOrigin(t *testing.T) {
	h := CORS([]string{"https://overol.example"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	req.Header.Set("Origin", "https://irgendwo.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
