package logger

import (
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Per-concern loggers, initialized once at startup.
var (
	ErrorLogger    *zap.Logger
	AuditLogger    *zap.Logger
	RequestLogger  *zap.Logger
	SecurityLogger *zap.Logger
	SystemLogger   *zap.Logger
)

func newLogger(filePath string, level zapcore.Level) (*zap.Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		level,
	)
	return zap.New(core), nil
}

// InitLoggers creates the log directory and one JSON file logger per
// concern. Failure here is fatal; the process must not run unlogged.
func InitLoggers(dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Cannot create log directory %s: %v", dir, err)
	}

	open := func(name string, level zapcore.Level) *zap.Logger {
		l, err := newLogger(filepath.Join(dir, name), level)
		if err != nil {
			log.Fatalf("Cannot create logger %s: %v", name, err)
		}
		return l
	}

	ErrorLogger = open("errors.log", zapcore.ErrorLevel)
	AuditLogger = open("audit.log", zapcore.InfoLevel)
	RequestLogger = open("request.log", zapcore.InfoLevel)
	SecurityLogger = open("security.log", zapcore.WarnLevel)
	SystemLogger = open("system.log", zapcore.InfoLevel)
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SecurityLogger.Sync()
	_ = SystemLogger.Sync()
}
