package logger

import (
	"testing"

	"ledger/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "warn", Format: "console"}})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}})
	require.Error(t, err)
}
