package cobrax

import (
	"github.com/spf13/pflag"
)

// AddFlag 添加标志，类型由默认值决定
func (c *Command) AddFlag(name, shorthand string, defaultValue any, usage string) {
	addFlag(c.Command.Flags(), name, shorthand, defaultValue, usage)
}

// AddFlags 批量添加标志
func (c *Command) AddFlags(flags ...Flag) {
	for _, flag := range flags {
		c.AddFlag(flag.Name, flag.Shorthand, flag.DefaultValue, flag.Usage)
	}
}

// AddPersistentFlag 添加持久化标志（可被子命令继承）
func (c *Command) AddPersistentFlag(name, shorthand string, defaultValue any, usage string) {
	addFlag(c.Command.PersistentFlags(), name, shorthand, defaultValue, usage)
}

func addFlag(fs *pflag.FlagSet, name, shorthand string, defaultValue any, usage string) {
	switch val := defaultValue.(type) {
	case string:
		fs.StringP(name, shorthand, val, usage)
	case int:
		fs.IntP(name, shorthand, val, usage)
	case bool:
		fs.BoolP(name, shorthand, val, usage)
	case float64:
		fs.Float64P(name, shorthand, val, usage)
	case []string:
		fs.StringSliceP(name, shorthand, val, usage)
	}
}

// ==================== 命令组 ====================

// NewCommandGroup 创建命令组
func NewCommandGroup(name, title string) *CommandGroup {
	return &CommandGroup{
		Name:  name,
		Title: title,
	}
}

// AddCommand 添加命令到组
func (g *CommandGroup) AddCommand(cmds ...*Command) {
	g.Commands = append(g.Commands, cmds...)
}
