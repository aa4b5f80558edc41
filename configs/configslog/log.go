package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog the printf-style sugared one.
// Both are no-op until InitLogger runs, so packages can log from tests.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger builds the zap logger according to APP_ENV.
// development (or unset): colored console output at debug level. Anything else: JSON at info level.
func InitLogger() {
	var cfg zap.Config
	env := os.Getenv("APP_ENV")
	if env == "" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic("cannot build zap logger: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
	SLog.Debugw("Logger initialized", "env", env)
}

// SyncLogger flushes buffered entries. Deferred from every main.
func SyncLogger() {
	_ = Log.Sync()
}
