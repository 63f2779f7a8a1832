package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Feed.HTTPTimeout = 5 * time.Second
	cfg.Feed.UserAgent = "feedquiz-test/1.0"
	cfg.Slack.WebhookURL = "https://hooks.slack.com/services/T000/B000/XXXX"
	cfg.Slack.HTTPTimeout = 5 * time.Second
	cfg.LLM.Provider = "mock"
	cfg.Store.Path = ":memory:"
	cfg.Log.Level = "debug"
	return cfg
}
