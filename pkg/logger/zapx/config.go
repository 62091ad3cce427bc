package zapx

type (
	// LogConf 日志配置，字段标签与 viper 的 mapstructure 解码对应
	LogConf struct {
		ServiceName string `mapstructure:"service_name"`
		Mode        string `mapstructure:"mode"`     // console | file | both | none
		Encoding    string `mapstructure:"encoding"` // json | console
		Level       string `mapstructure:"level"`    // debug | info | warn | error
		Path        string `mapstructure:"path"`     // 日志文件路径，Mode 包含 file 时必填
		MaxSize     int    `mapstructure:"max_size"` // 单个文件大小上限（MB），0 使用 lumberjack 默认值
		MaxBackups  int    `mapstructure:"max_backups"`
		KeepDays    int    `mapstructure:"keep_days"`
		Compress    bool   `mapstructure:"compress"`
		Development bool   `mapstructure:"development"`
	}
)

func (c LogConf) withDefaults() LogConf {
	if c.Mode == "" {
		c.Mode = ModeConsole
	}
	if c.Encoding == "" {
		c.Encoding = EncodingJSON
	}
	if c.Level == "" {
		c.Level = LevelInfo
	}
	return c
}
