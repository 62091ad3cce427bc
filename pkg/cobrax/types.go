package cobrax

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tedwangl/go-bloom/pkg/viperx"
)

type (
	// ==================== 接口定义 ====================

	// CmdRunner 定义命令运行器接口
	CmdRunner interface {
		Run(cmd *cobra.Command, args []string) error
	}

	// ParamValidator 定义参数校验器接口
	ParamValidator interface {
		Validate(value any) error
	}

	// ErrorHandler 定义错误处理函数类型
	ErrorHandler func(err error, cmd *cobra.Command) error

	// ==================== 核心类型 ====================

	// Tool 表示一个命令行工具，管理全局配置、日志和命令集
	Tool struct {
		rootCmd    *Command
		name       string
		version    string
		desc       string
		errHandler ErrorHandler
		logger     *zap.Logger
		logCloser  io.Closer
		logKey     string // 配置中日志段的 key，为空时不从配置初始化日志
		envPrefix  string // 环境变量前缀
		cfg        *viperx.Config
	}

	// Command 是对cobra.Command的包装，提供更简洁的API
	Command struct {
		*cobra.Command
		Runner     CmdRunner
		ErrHandler ErrorHandler
		validators map[string][]ParamValidator
	}

	// ==================== 辅助类型 ====================

	// CmdRunnerFunc 是函数类型的CmdRunner实现
	CmdRunnerFunc func(cmd *cobra.Command, args []string) error

	// Flag 标志定义
	Flag struct {
		Name         string
		Shorthand    string
		DefaultValue any
		Usage        string
	}

	// CommandGroup 命令组
	CommandGroup struct {
		Name     string
		Title    string
		Commands []*Command
	}

	// ==================== 校验器类型 ====================

	// RequiredValidator 检查参数是否必填
	RequiredValidator struct {
		Message string
	}

	// MinValueValidator 检查数值最小值
	MinValueValidator struct {
		Min     any
		Message string
	}

	// OpenRangeValidator 检查浮点数落在开区间 (Min, Max) 内，
	// 也接受数字字符串和字符串列表（逐个检查）
	OpenRangeValidator struct {
		Min     float64
		Max     float64
		Message string
	}
)

// Run 实现CmdRunner接口
func (f CmdRunnerFunc) Run(cmd *cobra.Command, args []string) error {
	return f(cmd, args)
}
