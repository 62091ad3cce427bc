package commands

import (
	"github.com/tedwangl/go-bloom/pkg/cobrax"
)

// RegisterFilterCommands 注册布隆过滤器相关命令
func RegisterFilterCommands(tool *cobrax.Tool) {
	filterGroup := cobrax.NewCommandGroup("filter", "")
	filterGroup.AddCommand(
		newParamsCommand(tool),
		newFPRCommand(tool),
		newCheckCommand(tool),
	)
	tool.AddGroupLogic(filterGroup)
}

// addFilterFlags 构造过滤器共用的标志
func addFilterFlags(cmd *cobrax.Command) {
	cmd.AddFlags(
		cobrax.Flag{Name: "mode", DefaultValue: "", Usage: "哈希模式：standard 或 fast"},
		cobrax.Flag{Name: "fast", DefaultValue: false, Usage: "--mode fast 的简写"},
		cobrax.Flag{Name: "encoding", Shorthand: "e", DefaultValue: "", Usage: "key 的文本编码，默认 utf-8"},
	)
}

// addWordsFlags 读取词表的标志
func addWordsFlags(cmd *cobrax.Command) {
	cmd.AddFlags(
		cobrax.Flag{Name: "file", Shorthand: "f", DefaultValue: "", Usage: "词表文件，词之间以空白分隔"},
		cobrax.Flag{Name: "progress", DefaultValue: false, Usage: "读取词表时显示进度条"},
	)
	cmd.AddParamValidator("file", &cobrax.RequiredValidator{Message: "需要通过 --file 指定词表"})
}

func addJSONFlag(cmd *cobrax.Command) {
	cmd.AddFlag("json", "", false, "以 JSON Lines 输出结果")
}
