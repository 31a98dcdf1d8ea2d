package generation

import (
	"context"
	"cyberlearn_backend/internal/config"
	"cyberlearn_backend/pkg/monitoring"
	"cyberlearn_backend/pkg/tracing"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	cfg    config.GenerationConfig
}

func NewOpenAIGenerator(cfg config.GenerationConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		cfg:    cfg,
	}, nil
}

func (g *OpenAIGenerator) Name() string  { return ProviderOpenAI }
func (g *OpenAIGenerator) Model() string { return g.model }

func (g *OpenAIGenerator) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	_, err := g.client.ListModels(ctx)
	return err == nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, span := tracing.Start(ctx, "openai.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("generation.kind", string(req.Kind)),
		attribute.String("generation.model", g.model),
	)

	start := time.Now()
	defer func() {
		monitoring.GenerationDuration.WithLabelValues(ProviderOpenAI, string(req.Kind)).Observe(time.Since(start).Seconds())
	}()

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.cfg.MaxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               g.model,
		Messages:            messages,
		MaxCompletionTokens: maxTokens,
		Temperature:         float32(g.cfg.Temperature),
		TopP:                float32(g.cfg.TopP),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		span.SetStatus(codes.Error, ErrEmptyResponse.Error())
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
