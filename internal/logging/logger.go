// Package logging is the central logging package of testrig. It holds the zap loggers used by the CLI and the
// plugins it runs.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the debug logger if debug is set and the production logger otherwise.
func New(debug bool) *zap.SugaredLogger {
	if debug {
		return NewDebugLogger(os.Stdout, os.Stderr)
	}

	return NewProductionLogger(os.Stdout, os.Stderr)
}

// NewProductionLogger returns a logger that prints Info messages to stdout and Warn or worse to stderr. Debug output
// is dropped.
func NewProductionLogger(stdout, stderr io.Writer) *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		// These strings are meaningless - they just need to be non-empty for the console encoder.
		MessageKey: "M",
		LevelKey:   "L",
		EncodeLevel: func(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			if lvl != zapcore.InfoLevel {
				zapcore.CapitalLevelEncoder(lvl, enc)
			}
		},
	})

	infoLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level == zapcore.InfoLevel
	})

	errorLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.WarnLevel
	})

	return zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(stdout), infoLevels),
		zapcore.NewCore(encoder, zapcore.AddSync(stderr), errorLevels),
	)).Sugar()
}

// NewDebugLogger is similar to the production logger, however it also includes debug output, timestamps, logger
// names & stacktraces.
func NewDebugLogger(stdout, stderr io.Writer) *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:      "L",
		MessageKey:    "M",
		NameKey:       "N",
		StacktraceKey: "S",
		TimeKey:       "T",
		EncodeLevel:   zapcore.CapitalColorLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	})

	stdoutLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level <= zapcore.InfoLevel
	})

	stderrLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return !stdoutLevels(level)
	})

	return zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(stdout), stdoutLevels),
		zapcore.NewCore(encoder, zapcore.AddSync(stderr), stderrLevels),
	)).WithOptions(
		zap.Development(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).Sugar()
}
