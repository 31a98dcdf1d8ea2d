package generation

import (
	"context"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

// FallbackGenerator answers from templates whenever the remote generator
// fails or returns nothing. Remote errors are logged, never returned.
type FallbackGenerator struct {
	remote   ContentGenerator
	fallback *TemplateGenerator
}

func NewFallbackGenerator(remote ContentGenerator, fallback *TemplateGenerator) *FallbackGenerator {
	return &FallbackGenerator{remote: remote, fallback: fallback}
}

func (g *FallbackGenerator) Name() string  { return g.remote.Name() }
func (g *FallbackGenerator) Model() string { return g.remote.Model() }

func (g *FallbackGenerator) Healthy(ctx context.Context) bool {
	return g.remote.Healthy(ctx)
}

func (g *FallbackGenerator) Generate(ctx context.Context, req Request) (string, error) {
	out, err := g.remote.Generate(ctx, req)
	if err == nil && strings.TrimSpace(out) != "" {
		return out, nil
	}
	if err == nil {
		err = ErrEmptyResponse
	}

	logger.Log.Warn("Remote generation failed, using template content",
		zap.String("provider", g.remote.Name()),
		zap.String("kind", string(req.Kind)),
		zap.Error(err),
	)
	monitoring.GenerationFallbacks.WithLabelValues(g.remote.Name(), string(req.Kind)).Inc()

	return g.fallback.Generate(ctx, req)
}
