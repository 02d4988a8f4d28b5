package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/pathweaver/internal/logger"
)

// NewProvider creates a Provider from configuration, wrapped with the
// retry and logging middleware. sink may be nil to skip event persistence.
func NewProvider(ctx context.Context, cfg Config, sink RequestLogger, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> timeout -> retry -> logging -> base. The timeout sits
	// outermost so it bounds the whole attempt sequence, not each retry.
	logged := WithLogging(base, sink, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}
