// Package logging builds the process logger. The terminal belongs to the
// UI, so logs only go to a file.
package logging

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON file logger at level, or a no-op logger when path is
// empty.
func New(level, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", level))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create log directory", goerr.V("path", path))
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize logger")
	}
	return logger, nil
}
