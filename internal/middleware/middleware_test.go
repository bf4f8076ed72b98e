package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"github.com/stretchr/testify/assert"
)

func traceEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(logger_i.TraceId(r.Context())))
	})
}

func TestWrap_TraceId(t *testing.T) {
	h := New(Options{RatePerSecond: 100, Burst: 100}).Wrap(traceEcho())

	req := httptest.NewRequest(http.MethodGet, "/runs/x", nil)
	req.Header.Set("X-Trace-Id", "given-trace")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "given-trace", rec.Body.String())
	assert.Equal(t, "given-trace", rec.Header().Get("X-Trace-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/x", nil))
	assert.Len(t, rec.Body.String(), 36, "a uuid trace id is generated")
}

func TestWrap_Auth(t *testing.T) {
	h := New(Options{AuthToken: "secret", RatePerSecond: 100, Burst: 100}).Wrap(traceEcho())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic secret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/runs/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWrap_NoAuthWhenTokenUnset(t *testing.T) {
	rec := httptest.NewRecorder()
	New(Options{}).Wrap(traceEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrap_RateLimit(t *testing.T) {
	h := New(Options{RatePerSecond: 0.001, Burst: 2}).Wrap(traceEcho())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per IP")
}

func TestWrap_RecoversPanic(t *testing.T) {
	h := New(Options{}).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload_pdf/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"An error occurred while processing the request"}`, rec.Body.String())
}
