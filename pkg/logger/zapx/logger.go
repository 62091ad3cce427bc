// Package zapx 基于 zap 的日志构建，文件输出通过 lumberjack 切割
package zapx

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New 按配置创建日志器。返回的 io.Closer 用于关闭日志文件，没有文件输出时为空操作
func New(c LogConf) (*zap.Logger, io.Closer, error) {
	c = c.withDefaults()

	level, ok := parseLevel(c.Level)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownLevel, c.Level)
	}

	var (
		cores  []zapcore.Core
		closer io.Closer = nopCloser{}
	)

	switch c.Mode {
	case ModeNone:
		return zap.NewNop(), closer, nil
	case ModeConsole, ModeFile, ModeBoth:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}

	if c.Mode == ModeConsole || c.Mode == ModeBoth {
		cores = append(cores, zapcore.NewCore(newEncoder(c.Encoding, true), consoleSink, level))
	}
	if c.Mode == ModeFile || c.Mode == ModeBoth {
		if c.Path == "" {
			return nil, nil, ErrLogPathNotSet
		}
		w := newRotateWriter(c)
		closer = w
		cores = append(cores, zapcore.NewCore(newEncoder(EncodingJSON, false), zapcore.AddSync(w), level))
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if c.ServiceName != "" {
		opts = append(opts, zap.Fields(zap.String(serviceKey, c.ServiceName)))
	}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewTee(cores...), opts...), closer, nil
}

func newEncoder(encoding string, console bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        timestampKey,
		LevelKey:       levelKey,
		NameKey:        "logger",
		CallerKey:      callerKey,
		MessageKey:     contentKey,
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if encoding == EncodingConsole {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if console {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}
