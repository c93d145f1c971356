// Package logger builds the structured loggers passed by constructor
// injection into the subsystems that log: keyspace, dispatch, conn, and aof
// all take a *zap.SugaredLogger field on their Config rather than reaching
// for a package-level global. hashtable, avltree, zset, resp and buffer do
// not log and have no Config.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envKey is the environment variable that selects the encoder. Setting it to
// "development" switches to a colorized console encoder with caller info;
// any other value (including unset) builds the release encoder.
const envKey = "REDCASK_ENV"

// New builds a *zap.SugaredLogger tagged with the given service name. The
// service name becomes a structured field on every log line emitted through
// the returned logger, so logs from the keyspace, the connection runtime,
// and the durability engine can be told apart even when interleaved.
func New(service string) *zap.SugaredLogger {
	var cfg zap.Config
	if os.Getenv(envKey) == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Falling back to a no-op logger keeps callers from having to check
		// an error just to get a logger; logging failures should not stop
		// the store from starting.
		base = zap.NewNop()
	}

	return base.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything written to it, for use
// in tests that don't want log noise but still need to satisfy a Config's
// Logger field.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
