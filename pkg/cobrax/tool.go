package cobrax

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tedwangl/go-bloom/pkg/logger/zapx"
	"github.com/tedwangl/go-bloom/pkg/viperx"
)

// 退出码
const (
	ExitOK    = 0
	ExitError = 1
	ExitPanic = 2
)

// NewTool 创建一个新的命令行工具
func NewTool(name, version, desc string) *Tool {
	rootCmd := &Command{
		Command: &cobra.Command{
			Use:   name,
			Short: desc,
			Long:  desc,
			// 错误和用法由 errHandler 统一输出
			SilenceErrors: true,
			SilenceUsage:  true,
		},
		ErrHandler: DefaultErrorHandler,
	}

	tool := &Tool{
		rootCmd:    rootCmd,
		name:       name,
		version:    version,
		desc:       desc,
		errHandler: DefaultErrorHandler,
		logger:     zap.NewNop(),
		envPrefix:  strings.ToUpper(name), // 默认环境变量前缀
		cfg:        viperx.New(),
	}

	tool.AddVersionCommand()
	tool.SetGlobalFlags()
	return tool
}

// SetErrorHandler 设置全局错误处理函数
func (t *Tool) SetErrorHandler(handler ErrorHandler) {
	if handler != nil {
		t.errHandler = handler
		t.rootCmd.ErrHandler = handler
	}
}

// GetRootCommand 获取根命令
func (t *Tool) GetRootCommand() *Command {
	return t.rootCmd
}

// AddVersionCommand 添加版本命令
func (t *Tool) AddVersionCommand() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "显示工具版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", t.name, t.version)
		},
	}
	t.rootCmd.Command.AddCommand(versionCmd)
}

// SetGlobalFlags 设置全局标志
func (t *Tool) SetGlobalFlags() {
	t.rootCmd.AddPersistentFlag("verbose", "v", false, "输出 debug 级别日志")
	t.rootCmd.AddPersistentFlag("config", "c", "", "配置文件路径")
}

// Execute 执行命令，返回进程退出码
func (t *Tool) Execute() int {
	code := make(chan int, 1)

	// 捕获panic
	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.logger.Error("程序崩溃", zap.Any("panic", r), zap.Stack("stack"))
				fmt.Fprintf(t.rootCmd.ErrOrStderr(), "程序崩溃: %v\n堆栈跟踪:\n%s\n", r, debug.Stack())
				code <- ExitPanic
			}
		}()

		cmd, err := t.rootCmd.Command.ExecuteC()
		if err != nil {
			if handler := t.errHandler; handler != nil {
				handler(err, cmd)
			}
			code <- ExitError
			return
		}
		code <- ExitOK
	}()

	exit := <-code
	t.closeLogger()
	return exit
}

// NewCommand 创建一个新的子命令，执行前先做参数校验
func (t *Tool) NewCommand(use, short, long string, runner CmdRunner) *Command {
	cmd := &Command{
		Command: &cobra.Command{
			Use:   use,
			Short: short,
			Long:  long,
		},
		Runner:     runner,
		ErrHandler: t.errHandler,
		validators: make(map[string][]ParamValidator),
	}

	cmd.RunE = func(cobraCmd *cobra.Command, args []string) error {
		// 未调用 SetConfig 时标志还没有绑定
		if err := bindAllFlags(t.cfg, cobraCmd); err != nil {
			return err
		}
		if err := cmd.ValidateFlags(t.cfg); err != nil {
			t.logger.Warn("参数校验失败",
				zap.String("command", cobraCmd.CommandPath()),
				zap.Error(err),
			)
			return err
		}

		if cmd.Runner != nil {
			t.logger.Debug("执行命令", zap.String("command", cobraCmd.CommandPath()))
			return cmd.Runner.Run(cobraCmd, args)
		}
		return nil
	}

	return cmd
}

// AddCommand 添加命令到工具
func (t *Tool) AddCommand(cmds ...*Command) {
	for _, cmd := range cmds {
		t.rootCmd.Command.AddCommand(cmd.Command)
	}
}

// AddGroupLogic 添加逻辑分组（仅用于帮助信息分类）
func (t *Tool) AddGroupLogic(cmdGroup *CommandGroup) {
	title := cmdGroup.Title
	if title == "" {
		title = fmt.Sprintf("%s Commands", strings.ToUpper(cmdGroup.Name[:1])+cmdGroup.Name[1:])
	}
	group := &cobra.Group{
		ID:    cmdGroup.Name,
		Title: title,
	}
	t.rootCmd.Command.AddGroup(group)

	for _, cmd := range cmdGroup.Commands {
		cmd.Command.GroupID = group.ID
		t.rootCmd.Command.AddCommand(cmd.Command)
	}
}

// InitLogger 按配置初始化日志器并设置到 Tool，替换之前的日志器
func (t *Tool) InitLogger(conf zapx.LogConf) error {
	logger, closer, err := zapx.New(conf)
	if err != nil {
		return fmt.Errorf("初始化日志器失败: %w", err)
	}
	t.closeLogger()
	t.logger = logger
	t.logCloser = closer
	return nil
}

func (t *Tool) closeLogger() {
	_ = t.logger.Sync()
	if t.logCloser != nil {
		_ = t.logCloser.Close()
		t.logCloser = nil
	}
}

// GetLogger 获取日志器，未初始化时为 nop
func (t *Tool) GetLogger() *zap.Logger {
	return t.logger
}

// SetEnvPrefix 设置环境变量前缀（默认为工具名的大写）
func (t *Tool) SetEnvPrefix(prefix string) {
	t.envPrefix = prefix
}
