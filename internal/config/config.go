package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Matcher MatcherConfig `yaml:"matcher" mapstructure:"matcher"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Notion  NotionConfig  `yaml:"notion" mapstructure:"notion"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates collaboration exports on disk.
type DataConfig struct {
	Dir      string   `yaml:"dir" mapstructure:"dir"`
	Patterns []string `yaml:"patterns" mapstructure:"patterns"`
}

// MatcherConfig tunes name resolution.
type MatcherConfig struct {
	MinScore        int `yaml:"min_score" mapstructure:"min_score"`
	SuggestMinScore int `yaml:"suggest_min_score" mapstructure:"suggest_min_score"`
	MinNameLength   int `yaml:"min_name_length" mapstructure:"min_name_length"`
}

// CatalogConfig points at an optional product catalog file.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// NotionConfig configures the optional Notion testimonial database.
type NotionConfig struct {
	Token      string  `yaml:"token" mapstructure:"token"`
	DatabaseID string  `yaml:"database_id" mapstructure:"database_id"`
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	Retries    int     `yaml:"retries" mapstructure:"retries"`
}

// Enabled reports whether a Notion source is configured.
func (n NotionConfig) Enabled() bool {
	return n.Token != "" && n.DatabaseID != ""
}

// ExportConfig configures batch reports.
type ExportConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks the configuration for the given mode ("match" or "serve").
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Matcher.MinScore < 0 || c.Matcher.MinScore > 100 {
		errs = append(errs, "matcher.min_score must be between 0 and 100")
	}
	if c.Matcher.SuggestMinScore < 0 || c.Matcher.SuggestMinScore > 100 {
		errs = append(errs, "matcher.suggest_min_score must be between 0 and 100")
	}
	if c.Matcher.MinNameLength < 1 {
		errs = append(errs, "matcher.min_name_length must be >= 1")
	}
	if c.Data.Dir == "" {
		errs = append(errs, "data.dir is required")
	}
	switch strings.ToLower(c.Export.Format) {
	case "xlsx", "csv":
	default:
		errs = append(errs, fmt.Sprintf("export.format must be xlsx or csv, got %q", c.Export.Format))
	}
	if (c.Notion.Token == "") != (c.Notion.DatabaseID == "") {
		errs = append(errs, "notion.token and notion.database_id must be set together")
	}
	if c.Notion.Retries < 0 {
		errs = append(errs, "notion.retries must be >= 0")
	}

	switch mode {
	case "match":
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data/uploads")
	v.SetDefault("data.patterns", []string{"*.csv", "*.xlsx"})
	v.SetDefault("matcher.min_score", 70)
	v.SetDefault("matcher.suggest_min_score", 50)
	v.SetDefault("matcher.min_name_length", 3)
	v.SetDefault("catalog.path", "")
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.database_id", "")
	v.SetDefault("notion.rate_limit", 3)
	v.SetDefault("notion.retries", 3)
	v.SetDefault("export.dir", "data/exports")
	v.SetDefault("export.format", "xlsx")
	v.SetDefault("server.port", 5000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
