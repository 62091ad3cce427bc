package cobrax

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultErrorHandler 默认错误处理函数
func DefaultErrorHandler(err error, cmd *cobra.Command) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "\n使用方法:\n%s", cmd.UsageString())
	}
	return err
}

// LoggingErrorHandler 带日志记录的错误处理函数。
// logger 在出错时才获取，日志器可以在命令执行过程中才初始化
func LoggingErrorHandler(logger func() *zap.Logger) ErrorHandler {
	return func(err error, cmd *cobra.Command) error {
		if err != nil {
			logger().Error("命令执行失败",
				zap.String("command", cmd.CommandPath()),
				zap.Error(err),
			)
		}
		return DefaultErrorHandler(err, cmd)
	}
}
