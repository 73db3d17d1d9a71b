package log

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level     string           `mapstructure:"level" yaml:"level"`
	Pattern   string           `mapstructure:"pattern" yaml:"pattern"`
	Time      string           `mapstructure:"time" yaml:"time"`
	Appenders []AppenderConfig `mapstructure:"appenders" yaml:"appenders"`
}

// AppenderConfig declares one log destination. Options are type-specific and
// decoded per appender.
type AppenderConfig struct {
	Type    string                 `mapstructure:"type" yaml:"type"`
	Options map[string]interface{} `mapstructure:"options" yaml:"options,omitempty"`
}

// FileAppenderOptions configure rotating file output.
type FileAppenderOptions struct {
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"maxsize,omitempty"` // MB
	MaxAge     int    `yaml:"maxage,omitempty"`  // days
	MaxBackups int    `yaml:"maxbackups,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

func defaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:   "info",
		Pattern: "%time [%level] %field %msg%n",
		Time:    "2006-01-02 15:04:05",
		Appenders: []AppenderConfig{
			{Type: "console"},
		},
	}
}

// DefaultConfig returns the console-only defaults applied when a config file
// carries no logger section.
func DefaultConfig() *LoggerConfig {
	return defaultConfig()
}
