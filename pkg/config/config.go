package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	SQLite    SQLiteConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SQLiteConfig struct {
	Path string
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type RateLimitConfig struct {
	MaxRequestsPerMinute int
}

// ExportConfig controls SVG export geometry and the semantic theme colors
// used to fill boxes by lifecycle status.
type ExportConfig struct {
	FontSize       int
	BoxWidth       int
	BoxHeight      int
	BoxGap         int
	ColumnGap      int
	GroupGap       int
	Padding        int
	MaxBoxesPerRow int
	Theme          ThemeConfig
}

type ThemeConfig struct {
	Error      string
	Success    string
	Info       string
	Warning    string
	Primary    string
	Text       string
	Background string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/archlens")

	viper.SetEnvPrefix("ARCHLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("sqlite.path", "./data/archlens.db")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")

	viper.SetDefault("ratelimit.maxRequestsPerMinute", 300)

	viper.SetDefault("export.fontSize", 12)
	viper.SetDefault("export.boxWidth", 160)
	viper.SetDefault("export.boxHeight", 48)
	viper.SetDefault("export.boxGap", 8)
	viper.SetDefault("export.columnGap", 32)
	viper.SetDefault("export.groupGap", 16)
	viper.SetDefault("export.padding", 24)
	viper.SetDefault("export.maxBoxesPerRow", 3)

	viper.SetDefault("export.theme.error", "#d32f2f")
	viper.SetDefault("export.theme.success", "#2e7d32")
	viper.SetDefault("export.theme.info", "#0288d1")
	viper.SetDefault("export.theme.warning", "#ed6c02")
	viper.SetDefault("export.theme.primary", "#1976d2")
	viper.SetDefault("export.theme.text", "#ffffff")
	viper.SetDefault("export.theme.background", "#fafafa")
}
