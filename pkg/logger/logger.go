package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger writing to stderr and, when fileSyncer is not nil, to the log file.
// Unknown levels fall back to info.
func NewLogger(logLevel string, fileSyncer *ReopenableWriteSyncer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zapcore.InfoLevel
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if fileSyncer != nil {
		sinks = append(sinks, fileSyncer)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller())
}

// NewServiceLogger opens the log file (if any) and tags every entry with service.name.
// The returned syncer is nil when logFile is empty.
func NewServiceLogger(serviceName, logLevel, logFile string) (*zap.Logger, *ReopenableWriteSyncer, error) {
	var fileSyncer *ReopenableWriteSyncer
	if logFile != "" {
		ws, err := NewReopenableWriteSyncer(logFile)
		if err != nil {
			return nil, nil, err
		}
		fileSyncer = ws
	}
	l := NewLogger(logLevel, fileSyncer).With(zap.String("service.name", serviceName))
	return l, fileSyncer, nil
}
