package cobrax

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tedwangl/go-bloom/pkg/logger/zapx"
	"github.com/tedwangl/go-bloom/pkg/viperx"
)

// SetConfig 设置配置文件和默认值，命令执行前加载。
// 优先级：命令行标志 > 环境变量 > 配置文件 > defaults
func (t *Tool) SetConfig(cfgFile string, defaults map[string]any) {
	originalPreRunE := t.rootCmd.PersistentPreRunE

	t.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// 从命令行标志获取配置文件路径
		if flagConfig, _ := cmd.Flags().GetString("config"); flagConfig != "" {
			cfgFile = flagConfig
		}

		// 1. 读取配置文件（可选）和环境变量
		cfg := viperx.New(
			viperx.WithFile(cfgFile),
			viperx.WithEnvPrefix(t.envPrefix),
			viperx.WithDefaults(defaults),
		)
		if err := cfg.Load(); err != nil {
			return err
		}

		// 2. 绑定所有标志
		if err := bindAllFlags(cfg, cmd); err != nil {
			return err
		}
		t.cfg = cfg

		// 3. 按配置初始化日志
		if err := t.initLoggerFromConfig(); err != nil {
			return err
		}
		if used := cfg.ConfigFileUsed(); used != "" {
			t.logger.Debug("配置文件已加载", zap.String("file", used))
		}

		// 4. 执行原有的 PreRunE（如果存在）
		if originalPreRunE != nil {
			return originalPreRunE(cmd, args)
		}
		return nil
	}
}

// bindAllFlags 绑定命令及其父命令的所有标志
func bindAllFlags(cfg *viperx.Config, cmd *cobra.Command) error {
	if err := cfg.Viper().BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("绑定命令标志失败: %w", err)
	}
	if err := cfg.Viper().BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("绑定继承标志失败: %w", err)
	}
	return nil
}

// SetLogConfigKey 指定配置中日志段的 key（如 "log"），加载配置后据此初始化日志
func (t *Tool) SetLogConfigKey(key string) {
	t.logKey = key
}

func (t *Tool) initLoggerFromConfig() error {
	if t.logKey == "" {
		return nil
	}

	var conf zapx.LogConf
	if err := t.cfg.UnmarshalKey(t.logKey, &conf); err != nil {
		return fmt.Errorf("解析日志配置失败: %w", err)
	}
	if conf.ServiceName == "" {
		conf.ServiceName = t.name
	}
	if t.cfg.GetBool("verbose") {
		conf.Level = zapx.LevelDebug
	}
	return t.InitLogger(conf)
}

// Config 返回当前配置，命令执行前只包含空配置
func (t *Tool) Config() *viperx.Config {
	return t.cfg
}
