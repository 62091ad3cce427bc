// Package viperx 基于 viper 的配置加载：配置文件 + 环境变量 + 默认值
package viperx

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type (
	// Config 配置管理器
	Config struct {
		v      *viper.Viper
		loaded string
	}

	// Option 配置选项
	Option func(*Config)
)

// New 创建配置管理器
//
// 默认行为：
// - 配置文件：由 WithFile / WithName + WithPath 指定，不存在不算错误
// - 环境变量：WithEnvPrefix 后自动绑定，"." 与 "-" 替换为 "_"
func New(opts ...Option) *Config {
	c := &Config{
		v: viper.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithFile 指定配置文件
// 支持格式：yaml, json, toml, ini, env
func WithFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.v.SetConfigFile(path)
		}
	}
}

// WithName 指定配置文件名（不含扩展名）
// 例如：WithName("config") 会查找 config.yaml, config.json 等
func WithName(name string) Option {
	return func(c *Config) {
		c.v.SetConfigName(name)
	}
}

// WithPath 指定配置文件搜索路径
func WithPath(paths ...string) Option {
	return func(c *Config) {
		for _, path := range paths {
			c.v.AddConfigPath(path)
		}
	}
}

// WithEnvPrefix 设置环境变量前缀
// 例如：WithEnvPrefix("BLOOMTOOL") 会读取 BLOOMTOOL_LOG_LEVEL 等
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.v.SetEnvPrefix(prefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.v.AutomaticEnv()
	}
}

// WithDefaults 设置默认值，支持 "log.level" 形式的嵌套 key
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) {
		for key, value := range defaults {
			c.v.SetDefault(key, value)
		}
	}
}

// Load 读取配置文件；文件不存在时只使用默认值和环境变量
func (c *Config) Load() error {
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("viperx: read config: %w", err)
	}
	c.loaded = c.v.ConfigFileUsed()
	return nil
}

// ConfigFileUsed 实际加载的配置文件，未加载时为空
func (c *Config) ConfigFileUsed() string {
	return c.loaded
}

// Unmarshal 解析配置到结构体
func (c *Config) Unmarshal(v any) error {
	return c.v.Unmarshal(v)
}

// UnmarshalKey 解析指定 key 下的配置。
// viper 自带的 UnmarshalKey 不读取嵌套 key 的环境变量，这里逐个 key 取值后再解析
func (c *Config) UnmarshalKey(key string, v any) error {
	prefix := strings.ToLower(key) + "."
	sub := viper.New()
	for _, k := range c.v.AllKeys() {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			sub.Set(rest, c.v.Get(k))
		}
	}
	return sub.Unmarshal(v)
}

// GetString 获取字符串配置
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetBool 获取布尔配置
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetInt 获取整数配置
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetStringSlice 获取字符串列表配置，逗号分隔的环境变量也会被拆分
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetFloat64 获取浮点配置
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// Viper 获取底层 viper 实例（高级用户）
func (c *Config) Viper() *viper.Viper {
	return c.v
}
