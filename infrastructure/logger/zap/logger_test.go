package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithCore(zap.New(core))

	logger.Warn("Conversion produced warnings", map[string]interface{}{
		"warnings": 2,
		"from":     "json",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Conversion produced warnings", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "json", ctx["from"])
	assert.EqualValues(t, 2, ctx["warnings"])
}

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewWithCore(zap.New(core))

	logger.Debug("hidden", nil)
	logger.Info("info", nil)
	logger.Error("error", map[string]interface{}{"code": 500})

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("error").Len())
}

func TestNew(t *testing.T) {
	logger, err := New("debug", "text")
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = New("nonsense", "json")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestToFields_SortedKeys(t *testing.T) {
	fields := toFields(map[string]interface{}{"b": 1, "a": 2})
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Nil(t, toFields(nil))
}
