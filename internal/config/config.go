// Package config loads application configuration from file and environment.
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
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Firecrawl FirecrawlConfig `yaml:"firecrawl" mapstructure:"firecrawl"`
	Retell    RetellConfig    `yaml:"retell" mapstructure:"retell"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Proposals ProposalsConfig `yaml:"proposals" mapstructure:"proposals"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// FirecrawlConfig holds Firecrawl API settings for website scraping.
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// RetellConfig holds the voice-call provider settings.
type RetellConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	AgentID    string `yaml:"agent_id" mapstructure:"agent_id"`
	FromNumber string `yaml:"from_number" mapstructure:"from_number"`
}

// GoogleConfig holds the service-account settings shared by Calendar and
// Gmail. Subject is the workspace user the service account impersonates.
type GoogleConfig struct {
	CredentialsPath string `yaml:"credentials_path" mapstructure:"credentials_path"`
	Subject         string `yaml:"subject" mapstructure:"subject"`
	CalendarID      string `yaml:"calendar_id" mapstructure:"calendar_id"`
	Timezone        string `yaml:"timezone" mapstructure:"timezone"`
}

// ScoringConfig holds the lead-routing thresholds.
type ScoringConfig struct {
	HotThreshold  int `yaml:"hot_threshold" mapstructure:"hot_threshold"`
	WarmThreshold int `yaml:"warm_threshold" mapstructure:"warm_threshold"`
}

// ProposalsConfig configures proposal document rendering.
type ProposalsConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("SALES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets default to empty so AutomaticEnv can bind them.
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.database_url", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("firecrawl.key", "")
	v.SetDefault("retell.key", "")
	v.SetDefault("retell.agent_id", "")
	v.SetDefault("retell.from_number", "")
	v.SetDefault("google.credentials_path", "")
	v.SetDefault("google.subject", "")
	v.SetDefault("google.calendar_id", "")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v2")
	v.SetDefault("google.timezone", "America/New_York")
	v.SetDefault("scoring.hot_threshold", 70)
	v.SetDefault("scoring.warm_threshold", 40)
	v.SetDefault("proposals.output_dir", "proposals")

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
