package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	log.Info("finding one book", "id", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "finding one book", rec["msg"])
	assert.Equal(t, float64(1), rec["id"])
}

func TestNew_DevelopmentLogsText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelWarn})

	log.Info("hidden")
	log.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "msg=shown"))
	assert.Contains(t, out, "k=v")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
