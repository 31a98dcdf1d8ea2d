package generation

import (
	"bytes"
	"context"
	"cyberlearn_backend/internal/config"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"
	"cyberlearn_backend/pkg/tracing"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const probeTimeout = 2 * time.Second

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
	TopP        float64 `json:"top_p"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

type OllamaGenerator struct {
	cfg    config.GenerationConfig
	client *http.Client

	mu      sync.RWMutex
	baseURL string
}

func NewOllamaGenerator(cfg config.GenerationConfig) *OllamaGenerator {
	return &OllamaGenerator{
		cfg:     cfg,
		client:  &http.Client{},
		baseURL: cfg.BaseURL,
	}
}

func (g *OllamaGenerator) Name() string  { return ProviderOllama }
func (g *OllamaGenerator) Model() string { return g.cfg.Model }

func (g *OllamaGenerator) BaseURL() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.baseURL
}

func (g *OllamaGenerator) candidates() []string {
	out := []string{}
	seen := map[string]bool{}
	for _, h := range append([]string{g.cfg.BaseURL}, g.cfg.Hosts...) {
		if h != "" && !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

// Discover probes the configured base URL and then each fallback host, and
// switches to the first that answers /api/tags.
func (g *OllamaGenerator) Discover(ctx context.Context) bool {
	for _, host := range g.candidates() {
		if g.probe(ctx, host) {
			g.mu.Lock()
			changed := g.baseURL != host
			g.baseURL = host
			g.mu.Unlock()
			if changed {
				logger.Log.Info("Using Ollama host", zap.String("host", host))
			}
			return true
		}
	}
	return false
}

func (g *OllamaGenerator) probe(ctx context.Context, host string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (g *OllamaGenerator) Healthy(ctx context.Context) bool {
	if g.probe(ctx, g.BaseURL()) {
		return true
	}
	return g.Discover(ctx)
}

func (g *OllamaGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, span := tracing.Start(ctx, "ollama.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("generation.kind", string(req.Kind)),
		attribute.String("generation.model", g.cfg.Model),
	)

	start := time.Now()
	defer func() {
		monitoring.GenerationDuration.WithLabelValues(ProviderOllama, string(req.Kind)).Observe(time.Since(start).Seconds())
	}()

	out, err := g.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return out, err
}

func (g *OllamaGenerator) generate(ctx context.Context, req Request) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.cfg.MaxTokens
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  g.cfg.Model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
		Options: ollamaOptions{
			Temperature: g.cfg.Temperature,
			NumPredict:  maxTokens,
			TopP:        g.cfg.TopP,
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL()+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(msg))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if out.Response == "" {
		return "", ErrEmptyResponse
	}
	return out.Response, nil
}
