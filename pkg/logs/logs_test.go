package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/uat_backend/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debug, warn bytes.Buffer
	h := fanOut(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h).With("component", "test")

	logger.Info("hello")
	logger.Warn("careful")

	assert.Contains(t, debug.String(), "hello")
	assert.Contains(t, debug.String(), "careful")
	assert.NotContains(t, warn.String(), "hello")
	assert.Contains(t, warn.String(), "component=test")
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestLokiWriter(t *testing.T) {
	var got lokiPush
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/push", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Logging.Output.Loki.Endpoint = srv.URL
	cfg.Observability.ServiceName = "uat_backend"
	cfg.Server.Environment = "test"

	logger := slog.New(newLokiHandler(cfg, slog.LevelInfo))
	logger.Info("question created", "id", 7)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, map[string]string{"service": "uat_backend", "env": "test"}, got.Streams[0].Stream)
	require.Len(t, got.Streams[0].Values, 1)
	assert.Contains(t, got.Streams[0].Values[0][1], `"msg":"question created"`)
}

func TestLokiPayloadTimestamp(t *testing.T) {
	lw := &lokiWriter{
		labels: map[string]string{"service": "uat"},
		now:    func() time.Time { return time.Unix(0, 42) },
	}
	raw, err := lw.payload([]byte("line\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"streams":[{"stream":{"service":"uat"},"values":[["42","line"]]}]}`, string(raw))
}
