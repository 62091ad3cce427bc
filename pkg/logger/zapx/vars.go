package zapx

import (
	"errors"
	"os"

	"go.uber.org/zap/zapcore"
)

const (
	ModeConsole = "console"
	ModeFile    = "file"
	ModeBoth    = "both"
	ModeNone    = "none"

	EncodingJSON    = "json"
	EncodingConsole = "console"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	callerKey    = "caller"
	contentKey   = "content"
	levelKey     = "level"
	timestampKey = "@timestamp"
	serviceKey   = "service"
)

var (
	ErrLogPathNotSet = errors.New("zapx: log path must be set")
	ErrUnknownMode   = errors.New("zapx: unknown log mode")
	ErrUnknownLevel  = errors.New("zapx: unknown log level")
)

// consoleSink 控制台输出目标；用 stderr，stdout 留给命令输出
var consoleSink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)

func parseLevel(level string) (zapcore.Level, bool) {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel, true
	case LevelInfo:
		return zapcore.InfoLevel, true
	case LevelWarn:
		return zapcore.WarnLevel, true
	case LevelError:
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}
