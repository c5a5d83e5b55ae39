package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini embedding model used for skill-set similarity.
const DefaultModel = "text-embedding-004"

// GeminiProvider implements Provider on top of the Gemini embedding API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates an embedding provider. An empty model name uses
// DefaultModel.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Similarity embeds both skill collections and returns their cosine
// similarity mapped to [0,1].
func (p *GeminiProvider) Similarity(ctx context.Context, a, b []string) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}

	va, err := p.embed(ctx, joinSkills(a))
	if err != nil {
		return 0, fmt.Errorf("failed to embed first skill list: %w", err)
	}
	vb, err := p.embed(ctx, joinSkills(b))
	if err != nil {
		return 0, fmt.Errorf("failed to embed second skill list: %w", err)
	}

	return cosine(va, vb), nil
}

func (p *GeminiProvider) embed(ctx context.Context, text string) ([]float32, error) {
	em := p.client.EmbeddingModel(p.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return res.Embedding.Values, nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
