package llm

import (
	"context"
	"fmt"

	"github.com/pders01/feedquiz/internal/config"
)

// NewProvider builds the configured provider wrapped with logging.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	var base Provider
	var err error

	// The configured default names a Bedrock model ID, which the direct
	// APIs do not accept.
	if cfg.Provider != "bedrock" && cfg.Model == DefaultBedrockModel {
		cfg.Model = ""
	}

	switch cfg.Provider {
	case "bedrock":
		base, err = NewBedrockProvider(ctx, BedrockConfig{Region: cfg.Region, Model: cfg.Model})
	case "anthropic":
		base, err = NewAnthropicProvider(AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "openai":
		base, err = NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "gemini":
		base, err = NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "mock":
		base = NewDryRunProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base), nil
}
