package logrus

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: "json", Output: &buf})

	logger.Info("Formatted content", map[string]interface{}{
		"format": "json",
		"bytes":  42,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Formatted content", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json", entry["format"])
	assert.Equal(t, float64(42), entry["bytes"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown warn", nil)
	logger.Error("shown error", map[string]interface{}{"code": 500})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "chatty", Output: &buf})

	logger.Debug("hidden", nil)
	logger.Info("shown", nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "text", Output: &buf})

	logger.Info("Cache hit", map[string]interface{}{"op": "diff"})
	assert.Contains(t, buf.String(), `msg="Cache hit"`)
	assert.Contains(t, buf.String(), "op=diff")
}

func TestLogger_RotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textforge.log")
	logger := New(Options{File: path})

	logger.Error("Failed to cache result", map[string]interface{}{"error": "redis down"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Failed to cache result")
}
