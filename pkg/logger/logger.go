package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	// Sink is a file path; empty means stdout.
	Sink string `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a JSON logger named name. The returned func syncs the
// logger and closes the sink file.
func NewLogger(cfg Log, name string) (*zap.Logger, func(), error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.TimeKey = "time"

	ws, closeSink := zapcore.Lock(os.Stdout), func() {}
	if cfg.Sink != "" {
		var err error
		ws, closeSink, err = zap.Open(cfg.Sink)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log sink %q", cfg.Sink)
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		ws,
		zap.NewAtomicLevelAt(cfg.LogLevel),
	)
	log := zap.New(core, zap.AddCaller()).Named(name)
	return log, func() {
		_ = log.Sync()
		closeSink()
	}, nil
}
