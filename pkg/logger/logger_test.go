package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Astemirdum/driver-rating/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Sink(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "rating.log")
	log, closeLog, err := logger.NewLogger(logger.Log{LogLevel: zapcore.WarnLevel, Sink: sink}, "test")
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	closeLog()

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"msg":"kept"`)
	require.Contains(t, out, `"logger":"test"`)
	require.False(t, strings.Contains(out, "dropped"))
}

func TestNewLogger_BadSink(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "missing", "rating.log")
	log, _, err := logger.NewLogger(logger.Log{Sink: sink}, "test")
	require.Error(t, err)
	require.Contains(t, err.Error(), sink)
	require.Nil(t, log)
}

func TestNewLogger_Stdout(t *testing.T) {
	t.Parallel()
	log, closeLog, err := logger.NewLogger(logger.Log{LogLevel: zapcore.ErrorLevel}, "test")
	require.NoError(t, err)
	require.NotNil(t, log)
	closeLog()
}
