package zapx

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// newRotateWriter 按大小切割的文件输出，目录不存在时 lumberjack 会自动创建
func newRotateWriter(c LogConf) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.KeepDays,
		Compress:   c.Compress,
		LocalTime:  true,
	}
}
