package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monet-draw/monet/internal/canvas"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRecoveryTurnsCanvasPanicInto500(t *testing.T) {
	logs := captureLogs(t)

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		c, err := canvas.New(&buf, 10, 10)
		require.NoError(t, err)
		c.EndGroup()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "handler panic")
	assert.Contains(t, logs.String(), "EndGroup")
}

func TestLogger(t *testing.T) {
	logs := captureLogs(t)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, logs.String(), "path=/render")
	assert.Contains(t, logs.String(), "status=418")
	assert.Contains(t, logs.String(), "bytes=15")
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		origins []string
		method  string
		origin  string
		status  int
		allowed string
	}{
		{"listed origin", []string{"http://a.example"}, http.MethodGet, "http://a.example", http.StatusOK, "http://a.example"},
		{"other origin", []string{"http://a.example"}, http.MethodGet, "http://b.example", http.StatusOK, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "http://b.example", http.StatusOK, "http://b.example"},
		{"preflight", []string{"http://a.example"}, http.MethodOptions, "http://a.example", http.StatusNoContent, "http://a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/render", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			CORS(tt.origins)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.allowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
