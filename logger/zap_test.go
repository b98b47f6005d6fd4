package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(zap.New(core)).With(map[string]any{"component": "curve"})

	log.Warn("price rejected", map[string]any{
		"code":  "OUT_OF_DOMAIN",
		"error": errors.New("boom"),
		"x":     11,
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "price rejected", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "curve", ctx["component"])
	assert.Equal(t, "OUT_OF_DOMAIN", ctx["code"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewZapLogger(t *testing.T) {
	log, err := NewZapLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNoopLogger(t *testing.T) {
	var log Logger = NoopLogger{}
	assert.NotPanics(t, func() {
		log.With(map[string]any{"a": 1}).Error("ignored", nil)
	})
}
