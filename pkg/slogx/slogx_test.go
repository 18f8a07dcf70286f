package slogx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
	"github.com/samber/oops"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestNew_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "appsimple", Version: "test", Env: "test", Level: "warn", Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "kept", lines[0]["msg"])
	require.Equal(t, "appsimple", lines[0]["service"])
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	slogx.LogError(logger, "plain", errors.New("boom"))
	slogx.LogError(logger, "wrapped", oops.Code("RESET_FAILED").With("stage", "seed").Wrap(errors.New("boom")))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	require.Equal(t, "boom", lines[0]["error"])
	require.NotContains(t, lines[0], "code")

	require.Equal(t, "RESET_FAILED", lines[1]["code"])
	require.Equal(t, map[string]any{"stage": "seed"}, lines[1]["context"])
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates a request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		reqID := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, reqID)

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)
		require.Equal(t, reqID, lines[0]["req_id"])
		require.Equal(t, "http_request", lines[1]["msg"])
		require.EqualValues(t, http.StatusTeapot, lines[1]["status"])
	})

	t.Run("keeps the caller's request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})
}
