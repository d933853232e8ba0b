package engine

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// TextGenerator is the single-turn generation surface tool handlers depend on.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewGenerator wraps the go-kit llm client (Gemini via its OpenAI-compatible
// endpoint) as a TextGenerator.
func NewGenerator(c Config) TextGenerator {
	client := llm.NewClient(c.LLMAPIBase, c.GeminiAPIKey, c.GeminiModel,
		llm.WithFallbackKeys(c.GeminiAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return client.Complete(ctx, "", prompt)
	})
}

// CheckGeneration reports whether a generation client is configured.
// Callers run this before any dependent network activity.
func CheckGeneration() error {
	if cfg.GeminiAPIKey == "" || cfg.Generator == nil {
		return ErrNoGeminiKey
	}
	return nil
}

// Generate sends a single-turn prompt to the configured model and returns the
// response text verbatim. A whitespace-only response counts as empty.
func Generate(ctx context.Context, prompt string) (string, error) {
	if err := CheckGeneration(); err != nil {
		return "", err
	}
	incrLLMCalls()
	text, err := cfg.Generator.Generate(ctx, prompt)
	if err != nil {
		incrLLMErrors()
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		incrLLMErrors()
		return "", ErrEmptyGeneration
	}
	return text, nil
}
