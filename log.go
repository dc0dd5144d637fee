package boolq

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption adjusts the zap.Config NewLogger builds from.
type LoggerOption func(*zap.Config)

// WithLevel sets the minimum enabled level.
func WithLevel(level zapcore.Level) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
}

// WithDevelopment switches zap into development mode.
func WithDevelopment(isDevelopment bool) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Development = isDevelopment
	}
}

// WithEncoding selects the "console" or "json" encoder.
func WithEncoding(encoding string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Encoding = encoding
	}
}

// WithOutputPaths replaces the default stderr output with paths.
func WithOutputPaths(paths ...string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
	}
}

// NewLogger builds a console logger for passing to config.WithLogger. The
// parser only logs at debug level, so the default level is debug. A config
// that fails to build yields a no-op logger.
func NewLogger(opts ...LoggerOption) *zap.Logger {
	loggerCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Development:       false,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "level",
			TimeKey:          "time",
			NameKey:          "logger",
			CallerKey:        "caller",
			FunctionKey:      zapcore.OmitKey,
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      zapcore.LowercaseLevelEncoder,
			EncodeTime:       zapcore.RFC3339TimeEncoder,
			EncodeDuration:   zapcore.SecondsDurationEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		},
		OutputPaths: []string{"stderr"},
	}

	for _, opt := range opts {
		opt(&loggerCfg)
	}

	logger, err := loggerCfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger.Named("boolq")
}
