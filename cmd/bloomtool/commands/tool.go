package commands

import (
	"io"

	"github.com/tedwangl/go-bloom/pkg/cobrax"
	"github.com/tedwangl/go-bloom/pkg/logger/zapx"
	bloomfilter "github.com/tedwangl/go-bloom/pkg/utils/bloom-filter"
	"github.com/tedwangl/go-bloom/pkg/utils/hashx"
)

// NewTool 创建 bloomtool 并注册全部命令，cfgFile 不存在时只使用默认值和环境变量
func NewTool(version, cfgFile string) *cobrax.Tool {
	tool := cobrax.NewTool("bloomtool", version, "布隆过滤器词表工具")

	// 设置环境变量前缀
	tool.SetEnvPrefix("BLOOMTOOL")

	// 日志按配置中的 log 段初始化
	tool.SetLogConfigKey("log")
	tool.SetConfig(cfgFile, Defaults())

	tool.SetErrorHandler(cobrax.LoggingErrorHandler(tool.GetLogger))

	// 注册命令组
	RegisterHashCommands(tool)
	RegisterFilterCommands(tool)
	return tool
}

// Defaults 配置默认值。命令行标志与配置 key 同名，如 encoding、fast、p
func Defaults() map[string]any {
	return map[string]any{
		"encoding":        hashx.EncodingName(hashx.DefaultEncoding),
		"log.mode":        zapx.ModeConsole,
		"log.encoding":    zapx.EncodingConsole,
		"log.level":       zapx.LevelInfo,
		"log.path":        "",
		"log.max_size":    0,
		"log.max_backups": 0,
		"log.keep_days":   0,
		"log.compress":    false,
	}
}

// filterOptions 由 encoding、mode 和 fast 配置生成过滤器选项
func filterOptions(tool *cobrax.Tool) ([]bloomfilter.Option, error) {
	cfg := tool.Config()

	enc, err := hashx.LookupEncoding(cfg.GetString("encoding"))
	if err != nil {
		return nil, err
	}

	mode, err := bloomfilter.ParseHashMode(cfg.GetString("mode"))
	if err != nil {
		return nil, err
	}
	if cfg.GetBool("fast") {
		mode = bloomfilter.FastHash
	}

	return []bloomfilter.Option{
		bloomfilter.WithEncoding(enc),
		bloomfilter.WithHashMode(mode),
		bloomfilter.WithLogger(tool.GetLogger()),
	}, nil
}

// progressOutput 开启 --progress 时进度条输出到 stderr
func progressOutput(tool *cobrax.Tool, errOut io.Writer) io.Writer {
	if tool.Config().GetBool("progress") {
		return errOut
	}
	return nil
}
