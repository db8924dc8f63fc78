// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings of file sinks.
const (
	maxSizeMB  = 50
	maxBackups = 3
	maxAgeDays = 28
)

// NewLogger builds a zap logger based on level/format settings. Output goes
// to stderr, or to a rotated file when file is set.
func NewLogger(level, format, file string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.Set(strings.ToLower(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var encoder zapcore.Encoder

	switch strings.ToLower(format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, errors.Newf("invalid log format %q", format)
	}

	sink := zapcore.Lock(os.Stderr)
	if file != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			LocalTime:  true,
		})
	}

	return zap.New(zapcore.NewCore(encoder, sink, zapLevel)), nil
}
