package generation

import (
	"context"
	"cyberlearn_backend/internal/config"
	"errors"
	"fmt"
)

type Kind string

const (
	KindCurriculum Kind = "curriculum"
	KindChat       Kind = "chat"
)

const (
	ProviderTemplate = "template"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
)

var ErrEmptyResponse = errors.New("generation returned no content")

// Request carries both the model prompt and the variables the template
// generator renders when no model answers.
type Request struct {
	Kind      Kind
	System    string
	Prompt    string
	Vars      map[string]any
	MaxTokens int
}

type ContentGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Healthy(ctx context.Context) bool
	Model() string
	Name() string
}

// New builds the generator selected by cfg.Provider. Remote providers are
// always wrapped so callers receive template content when they fail.
func New(cfg config.GenerationConfig) (ContentGenerator, error) {
	tmpl := NewTemplateGenerator()

	switch cfg.Provider {
	case ProviderTemplate, "":
		return tmpl, nil
	case ProviderOllama:
		g := NewOllamaGenerator(cfg)
		go g.Discover(context.Background())
		return NewFallbackGenerator(g, tmpl), nil
	case ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg)
		if err != nil {
			return nil, err
		}
		return NewFallbackGenerator(g, tmpl), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
