package commands

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tedwangl/go-bloom/pkg/cobrax"
	"github.com/tedwangl/go-bloom/pkg/utils/hashx"
)

// RegisterHashCommands 注册哈希相关命令
func RegisterHashCommands(tool *cobrax.Tool) {
	hashGroup := cobrax.NewCommandGroup("hash", "")

	// hash - 输出词表的哈希对照表
	hashCmd := tool.NewCommand(
		"hash [words...]",
		"计算 Murmur3-32 哈希",
		"对每个词计算 Murmur3 x86 32 位哈希（seed 0），每行输出一个有符号 32 位整数",
		cobrax.CmdRunnerFunc(func(cmd *cobra.Command, args []string) error {
			cfg := tool.Config()

			words := append([]string(nil), args...)
			if path := cfg.GetString("file"); path != "" {
				fileWords, err := loadWords(path, progressOutput(tool, cmd.ErrOrStderr()))
				if err != nil {
					return err
				}
				words = append(words, fileWords...)
			}
			if len(words) == 0 {
				return errors.New("没有需要计算哈希的词，传入参数或使用 --file")
			}

			enc, err := hashx.LookupEncoding(cfg.GetString("encoding"))
			if err != nil {
				return err
			}

			hex := cfg.GetBool("hex")
			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, word := range words {
				h, err := hashx.Murmur32StringWithEncoding(word, enc)
				if err != nil {
					return fmt.Errorf("计算 %q 的哈希失败: %w", word, err)
				}
				if hex {
					fmt.Fprintf(w, "%08x\n", uint32(h))
				} else {
					fmt.Fprintln(w, h)
				}
			}
			return w.Flush()
		}),
	)
	hashCmd.AddFlag("file", "f", "", "词表文件，词之间以空白分隔")
	hashCmd.AddFlag("encoding", "e", "", "文本编码，如 utf-8、windows-1251、utf-16le")
	hashCmd.AddFlag("hex", "x", false, "以 8 位十六进制（无符号）输出")
	hashCmd.AddFlag("progress", "", false, "读取词表时显示进度条")

	hashGroup.AddCommand(hashCmd)
	tool.AddGroupLogic(hashGroup)
}
