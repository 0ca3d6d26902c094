package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	BIS       BISConfig       `yaml:"bis" mapstructure:"bis"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Port  int  `yaml:"port" mapstructure:"port"`
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// BISConfig configures access to the BIS statistics API.
type BISConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig configures the per-group dataset cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// DashboardConfig configures page rendering behavior.
type DashboardConfig struct {
	DefaultGroup string `yaml:"default_group" mapstructure:"default_group"`
	PreviewRows  int    `yaml:"preview_rows" mapstructure:"preview_rows"`
	// HistogramBins of 0 means auto: 50 when groups are switchable,
	// 120 when the server is pinned to a single group.
	HistogramBins int `yaml:"histogram_bins" mapstructure:"histogram_bins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CREDITGAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8050)
	v.SetDefault("server.debug", false)
	v.SetDefault("bis.base_url", "https://stats.bis.org/api/v2/data/dataflow/BIS/WS_CREDIT_GAP/1.0")
	v.SetDefault("bis.user_agent", "creditgap/1.0")
	v.SetDefault("bis.timeout_secs", 30)
	v.SetDefault("bis.max_retries", 3)
	v.SetDefault("cache.ttl_minutes", 60)
	v.SetDefault("dashboard.default_group", "EU")
	v.SetDefault("dashboard.preview_rows", 10)
	v.SetDefault("dashboard.histogram_bins", 0)
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

// Validate checks the configuration for the serving path.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}
	if c.BIS.BaseURL == "" {
		problems = append(problems, "bis.base_url is required")
	}
	if c.Dashboard.DefaultGroup == "" {
		problems = append(problems, "dashboard.default_group is required")
	}
	if c.Dashboard.PreviewRows < 1 || c.Dashboard.PreviewRows > 500 {
		problems = append(problems, "dashboard.preview_rows must be between 1 and 500")
	}
	if c.Dashboard.HistogramBins < 0 {
		problems = append(problems, "dashboard.histogram_bins must be >= 0")
	}
	if c.Cache.TTLMinutes < 0 {
		problems = append(problems, "cache.ttl_minutes must be >= 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
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
