package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/docugraph/docugraph-backend/internal/platform/envutil"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

// Client is the text-generation capability used for extraction, query
// translation, and answer synthesis. One implementation per provider;
// the backend is chosen once at construction, never per call site.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// New builds the client named by provider ("openai", "gemini",
// "anthropic"; model ids like "gpt-4o" or "claude-3-5-sonnet" also
// resolve). Empty provider falls back to LLM_PROVIDER, then "openai".
func New(ctx context.Context, log *logger.Logger, provider string) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("llm: logger required")
	}
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" {
		p = strings.ToLower(envutil.String("LLM_PROVIDER", "openai"))
	}
	switch {
	case p == "openai" || strings.Contains(p, "gpt"):
		return NewOpenAI(log)
	case strings.Contains(p, "gemini"):
		return NewGemini(ctx, log)
	case p == "anthropic" || strings.Contains(p, "claude"):
		return NewAnthropic(log)
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", provider)
	}
}
