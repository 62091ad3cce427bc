package cobrax

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/tedwangl/go-bloom/pkg/viperx"
)

// ==================== RequiredValidator ====================

func (v *RequiredValidator) Validate(value any) error {
	if value == nil {
		return errors.New(v.getMessage())
	}

	switch val := value.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return errors.New(v.getMessage())
		}
	case []string:
		if len(val) == 0 {
			return errors.New(v.getMessage())
		}
	}
	// 数值和布尔类型零值也视为有效值
	return nil
}

func (v *RequiredValidator) getMessage() string {
	if v.Message != "" {
		return v.Message
	}
	return "参数不能为空"
}

// ==================== MinValueValidator ====================

func (v *MinValueValidator) Validate(value any) error {
	switch val := value.(type) {
	case int:
		min, ok := v.Min.(int)
		if !ok {
			return errors.New("MinValueValidator: Min 值类型不匹配")
		}
		if val < min {
			return v.getErrorMessage(min)
		}
	case float64:
		min, ok := v.Min.(float64)
		if !ok {
			return errors.New("MinValueValidator: Min 值类型不匹配")
		}
		if val < min {
			return v.getErrorMessage(min)
		}
	default:
		return errors.New("MinValueValidator 只能验证数值类型")
	}
	return nil
}

func (v *MinValueValidator) getErrorMessage(min any) error {
	if v.Message != "" {
		return errors.New(v.Message)
	}
	return fmt.Errorf("参数值不能小于%v", min)
}

// ==================== OpenRangeValidator ====================

func (v *OpenRangeValidator) Validate(value any) error {
	switch val := value.(type) {
	case float64:
		return v.check(val)
	case string:
		return v.checkString(val)
	case []string:
		// 环境变量中的列表是一个逗号分隔的字符串
		for _, elem := range val {
			for _, s := range strings.Split(elem, ",") {
				if strings.TrimSpace(s) == "" {
					continue
				}
				if err := v.checkString(s); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return errors.New("OpenRangeValidator 只能验证浮点数或数字字符串")
	}
}

func (v *OpenRangeValidator) checkString(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("参数值 %q 不是数字", s)
	}
	return v.check(f)
}

func (v *OpenRangeValidator) check(f float64) error {
	// NaN 不满足任何比较
	if f > v.Min && f < v.Max {
		return nil
	}
	if v.Message != "" {
		return errors.New(v.Message)
	}
	return fmt.Errorf("参数值 %v 必须在 (%v, %v) 之间", f, v.Min, v.Max)
}

// ==================== Command 校验方法 ====================

// ValidateFlags 验证命令的所有标志，按标志名顺序检查。
// 值从 cfg 读取，与命令实际使用的值一致（标志、环境变量、配置文件或默认值）
func (c *Command) ValidateFlags(cfg *viperx.Config) error {
	if len(c.validators) == 0 {
		return nil
	}

	for _, flagName := range slices.Sorted(maps.Keys(c.validators)) {
		flag := c.Command.Flags().Lookup(flagName)
		if flag == nil {
			continue
		}

		var value any
		switch flag.Value.Type() {
		case "string":
			value = cfg.GetString(flagName)
		case "int":
			value = cfg.GetInt(flagName)
		case "bool":
			value = cfg.GetBool(flagName)
		case "float64":
			value = cfg.GetFloat64(flagName)
		case "stringSlice":
			value = cfg.GetStringSlice(flagName)
		default:
			value = cfg.Viper().Get(flagName)
		}

		for _, validator := range c.validators[flagName] {
			if err := validator.Validate(value); err != nil {
				return fmt.Errorf("参数 %s 验证失败: %v", flagName, err)
			}
		}
	}

	return nil
}

// AddParamValidator 为命令的特定标志添加参数校验器
func (c *Command) AddParamValidator(flagName string, validator ParamValidator) {
	if c.validators == nil {
		c.validators = make(map[string][]ParamValidator)
	}
	c.validators[flagName] = append(c.validators[flagName], validator)
}
