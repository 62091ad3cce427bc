package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tedwangl/go-bloom/pkg/cobrax"
	bloomfilter "github.com/tedwangl/go-bloom/pkg/utils/bloom-filter"
	"github.com/tedwangl/go-bloom/pkg/utils/jsonx"
)

var defaultProbabilities = []string{"0.01", "0.03", "0.05", "0.10"}

type (
	sweepConfig struct {
		Part          float64 // 插入部分占词表的比例
		Probabilities []float64
		Tolerance     float64
		Baseline      bool
		Options       []bloomfilter.Option
	}

	sweepResult struct {
		P                float64 `json:"p"`
		NumBits          int     `json:"bits"`
		NumHashFunctions int     `json:"k"`
		Queried          int     `json:"queried"`
		FalsePositives   int     `json:"false_positives"`
		Rate             float64 `json:"rate"`
		BaselineRate     float64 `json:"baseline_rate,omitempty"`
		Pass             bool    `json:"pass"`
	}
)

// fpr - 用词表前一部分建过滤器，剩余部分统计误判率
func newFPRCommand(tool *cobrax.Tool) *cobrax.Command {
	cmd := tool.NewCommand(
		"fpr",
		"测量误判率",
		"把词表前 part 部分插入过滤器，用剩余部分查询，统计每个目标误判率下的实际误判率；\n"+
			"各目标误判率并行测量，实际值与目标值之差不小于 tolerance 时失败",
		cobrax.CmdRunnerFunc(func(cmd *cobra.Command, args []string) error {
			cfg := tool.Config()
			logger := tool.GetLogger()

			undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
			if err != nil {
				logger.Warn("设置 GOMAXPROCS 失败", zap.Error(err))
			}
			defer undo()

			probabilities, err := parseProbabilities(cfg.GetStringSlice("p"))
			if err != nil {
				return err
			}
			words, err := loadWords(cfg.GetString("file"), progressOutput(tool, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			opts, err := filterOptions(tool)
			if err != nil {
				return err
			}

			sc := sweepConfig{
				Part:          cfg.GetFloat64("part"),
				Probabilities: probabilities,
				Tolerance:     cfg.GetFloat64("tolerance"),
				Baseline:      cfg.GetBool("baseline"),
				Options:       opts,
			}
			results, err := sweep(cmd.Context(), words, sc)
			if err != nil {
				return err
			}

			if cfg.GetBool("json") {
				for _, r := range results {
					if err := jsonx.WriteLine(cmd.OutOrStdout(), r); err != nil {
						return err
					}
				}
			} else {
				writeSweepReport(cmd.OutOrStdout(), results, sc.Baseline)
			}

			failed := 0
			for _, r := range results {
				if !r.Pass {
					failed++
				}
			}
			logger.Info("误判率测量完成",
				zap.Int("words", len(words)),
				zap.Int("probabilities", len(results)),
				zap.Int("failed", failed),
			)
			if failed > 0 {
				return fmt.Errorf("%d/%d 个误判率超出容差 %v", failed, len(results), sc.Tolerance)
			}
			return nil
		}),
	)
	addWordsFlags(cmd)
	addFilterFlags(cmd)
	addJSONFlag(cmd)
	cmd.AddFlag("part", "", 0.5, "插入过滤器的词所占比例，(0, 1)")
	cmd.AddFlag("p", "p", defaultProbabilities, "目标误判率列表，逗号分隔")
	cmd.AddFlag("tolerance", "t", 0.01, "实际误判率允许的偏差")
	cmd.AddFlag("baseline", "", false, "同时用 bits-and-blooms/bloom 测量作为对照")
	cmd.AddParamValidator("part", &cobrax.OpenRangeValidator{Min: 0, Max: 1})
	cmd.AddParamValidator("p", &cobrax.OpenRangeValidator{Min: 0, Max: 1})
	cmd.AddParamValidator("tolerance", &cobrax.OpenRangeValidator{Min: 0, Max: 1})
	return cmd
}

// parseProbabilities 解析误判率列表，元素内的逗号也作为分隔符（环境变量只能传单个字符串）
func parseProbabilities(values []string) ([]float64, error) {
	var out []float64
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			p, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("无效的误判率 %q: %w", s, err)
			}
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("误判率列表为空")
	}
	return out, nil
}

// sweep 对每个目标误判率各建一个过滤器并行测量，结果顺序与 Probabilities 一致
func sweep(ctx context.Context, words []string, c sweepConfig) ([]sweepResult, error) {
	part := int(c.Part * float64(len(words)))
	if part < 1 || part >= len(words) {
		return nil, fmt.Errorf("词表共 %d 个词，按 %v 划分后插入部分或查询部分为空", len(words), c.Part)
	}
	inserted, rest := words[:part], words[part:]

	members := make(map[string]struct{}, part)
	for _, w := range inserted {
		members[w] = struct{}{}
	}

	results := make([]sweepResult, len(c.Probabilities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range c.Probabilities {
		g.Go(func() error {
			r, err := measure(ctx, inserted, rest, members, p, c)
			if err != nil {
				return fmt.Errorf("p=%v: %w", p, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func measure(ctx context.Context, inserted, rest []string, members map[string]struct{}, p float64, c sweepConfig) (sweepResult, error) {
	if err := ctx.Err(); err != nil {
		return sweepResult{}, err
	}

	bf, err := bloomfilter.New(len(inserted), p, c.Options...)
	if err != nil {
		return sweepResult{}, err
	}
	for _, w := range inserted {
		bf.Insert(w)
	}

	r := sweepResult{
		P:                p,
		NumBits:          bf.NumBits(),
		NumHashFunctions: bf.NumHashFunctions(),
		Queried:          len(rest),
	}
	r.FalsePositives = countFalsePositives(rest, members, bf.MightContain)
	r.Rate = float64(r.FalsePositives) / float64(r.Queried)
	r.Pass = math.Abs(r.Rate-p) < c.Tolerance

	if c.Baseline {
		base := bloom.NewWithEstimates(uint(len(inserted)), p)
		for _, w := range inserted {
			base.AddString(w)
		}
		r.BaselineRate = float64(countFalsePositives(rest, members, base.TestString)) / float64(r.Queried)
	}
	return r, nil
}

func countFalsePositives(queries []string, members map[string]struct{}, mightContain func(string) bool) int {
	n := 0
	for _, w := range queries {
		if _, ok := members[w]; ok {
			continue
		}
		if mightContain(w) {
			n++
		}
	}
	return n
}

func writeSweepReport(w io.Writer, results []sweepResult, baseline bool) {
	for _, r := range results {
		line := fmt.Sprintf("p=%.3f bits=%d k=%d false_positives=%d/%d rate=%.4f",
			r.P, r.NumBits, r.NumHashFunctions, r.FalsePositives, r.Queried, r.Rate)
		if baseline {
			line += fmt.Sprintf(" baseline=%.4f", r.BaselineRate)
		}
		status := color.GreenString("PASS")
		if !r.Pass {
			status = color.RedString("FAIL")
		}
		fmt.Fprintf(w, "%s %s\n", line, status)
	}
}
