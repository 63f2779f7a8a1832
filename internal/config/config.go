package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pders01/feedquiz/internal/validation"
)

type Config struct {
	Feed   FeedConfig   `mapstructure:"feed"`
	Slack  SlackConfig  `mapstructure:"slack"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
}

type FeedConfig struct {
	URL         string        `mapstructure:"url" validate:"required,url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Window      time.Duration `mapstructure:"window" validate:"gt=0"`
}

type SlackConfig struct {
	WebhookURL  string        `mapstructure:"webhook_url" validate:"required,url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// DisplayZone is the IANA zone used for timestamps shown in messages.
	DisplayZone string `mapstructure:"display_zone"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=bedrock anthropic openai gemini mock"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
	Region   string `mapstructure:"region"`
}

type StoreConfig struct {
	Backend   string        `mapstructure:"backend" validate:"oneof=bolt dynamodb redis"`
	Path      string        `mapstructure:"path" validate:"required_if=Backend bolt"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Table     string        `mapstructure:"table" validate:"required_if=Backend dynamodb"`
	Region    string        `mapstructure:"region"`
	RedisAddr string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int           `mapstructure:"redis_db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SearchConfig locates the question archive index. An empty IndexPath
// disables indexing.
type SearchConfig struct {
	IndexPath string `mapstructure:"index_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	File   string `mapstructure:"file"`
}

// DefaultFeedURL is the Japanese AWS blog feed.
const DefaultFeedURL = "https://aws.amazon.com/jp/blogs/news/feed/"

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Feed: FeedConfig{
			URL:         DefaultFeedURL,
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "feedquiz/1.0 (https://github.com/pders01/feedquiz)",
			Window:      24 * time.Hour,
		},
		Slack: SlackConfig{
			HTTPTimeout: 10 * time.Second,
			DisplayZone: "Asia/Tokyo",
		},
		LLM: LLMConfig{
			Provider: "bedrock",
			Model:    "anthropic.claude-3-5-sonnet-20240620-v1:0",
		},
		Store: StoreConfig{
			Backend:   "bolt",
			Path:      filepath.Join(homeDir, ".feedquiz", "questions.db"),
			Timeout:   1 * time.Second,
			Table:     "SaaQuestions",
			RedisAddr: "localhost:6379",
			KeyPrefix: "feedquiz:question:",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// legacyEnv maps config keys to the environment variable names the original
// deployment used, so existing Lambda settings keep working.
var legacyEnv = map[string][]string{
	"slack.webhook_url": {"SLACK_WEBHOOK_URL"},
	"feed.url":          {"AWS_BLOG_RSS_URL"},
	"store.table":       {"QUESTIONS_TABLE"},
	"store.region":      {"AWS_REGION"},
	"llm.region":        {"AWS_REGION"},
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("feed.url", cfg.Feed.URL)
	v.SetDefault("feed.http_timeout", cfg.Feed.HTTPTimeout)
	v.SetDefault("feed.user_agent", cfg.Feed.UserAgent)
	v.SetDefault("feed.window", cfg.Feed.Window)

	v.SetDefault("slack.webhook_url", cfg.Slack.WebhookURL)
	v.SetDefault("slack.http_timeout", cfg.Slack.HTTPTimeout)
	v.SetDefault("slack.display_zone", cfg.Slack.DisplayZone)

	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	v.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	v.SetDefault("llm.region", cfg.LLM.Region)

	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.timeout", cfg.Store.Timeout)
	v.SetDefault("store.table", cfg.Store.Table)
	v.SetDefault("store.region", cfg.Store.Region)
	v.SetDefault("store.redis_addr", cfg.Store.RedisAddr)
	v.SetDefault("store.redis_db", cfg.Store.RedisDB)
	v.SetDefault("store.key_prefix", cfg.Store.KeyPrefix)
	v.SetDefault("store.ttl", cfg.Store.TTL)

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	v.SetDefault("search.index_path", cfg.Search.IndexPath)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

// Load reads configuration from defaults, an optional TOML file, a .env file
// in the working directory and the environment, in increasing priority.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "feedquiz")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FEEDQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		prefixed := "FEEDQUIZ_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

var validate = validator.New()

// Validate checks the configuration before any component is built.
// Startup should abort on error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.LLM.Provider {
	case "anthropic", "openai", "gemini":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("invalid configuration: llm.api_key is required for the %s provider", c.LLM.Provider)
		}
	}

	endpoints := validation.NewEndpointValidator()
	feedURL, err := endpoints.ValidateAndNormalize(c.Feed.URL)
	if err != nil {
		return fmt.Errorf("invalid feed url: %w", err)
	}
	c.Feed.URL = feedURL

	if _, err := endpoints.ValidateAndNormalize(c.Slack.WebhookURL); err != nil {
		return fmt.Errorf("invalid slack webhook url: %w", err)
	}

	if _, err := time.LoadLocation(c.Slack.DisplayZone); err != nil {
		return fmt.Errorf("invalid display zone %q: %w", c.Slack.DisplayZone, err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Search.IndexPath = expandPath(cfg.Search.IndexPath)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings for TOML readability
	v.Set("feed", map[string]interface{}{
		"url":          config.Feed.URL,
		"http_timeout": config.Feed.HTTPTimeout.String(),
		"user_agent":   config.Feed.UserAgent,
		"window":       config.Feed.Window.String(),
	})
	v.Set("slack", map[string]interface{}{
		"webhook_url":  config.Slack.WebhookURL,
		"http_timeout": config.Slack.HTTPTimeout.String(),
		"display_zone": config.Slack.DisplayZone,
	})
	v.Set("llm", map[string]interface{}{
		"provider": config.LLM.Provider,
		"model":    config.LLM.Model,
		"base_url": config.LLM.BaseURL,
		"region":   config.LLM.Region,
	})
	v.Set("store", map[string]interface{}{
		"backend":    config.Store.Backend,
		"path":       config.Store.Path,
		"timeout":    config.Store.Timeout.String(),
		"table":      config.Store.Table,
		"region":     config.Store.Region,
		"redis_addr": config.Store.RedisAddr,
		"redis_db":   config.Store.RedisDB,
		"key_prefix": config.Store.KeyPrefix,
		"ttl":        config.Store.TTL.String(),
	})
	v.Set("server", map[string]interface{}{
		"addr":             config.Server.Addr,
		"shutdown_timeout": config.Server.ShutdownTimeout.String(),
	})
	v.Set("search", map[string]interface{}{
		"index_path": config.Search.IndexPath,
	})
	v.Set("log", map[string]interface{}{
		"level":  config.Log.Level,
		"format": config.Log.Format,
		"file":   config.Log.File,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
