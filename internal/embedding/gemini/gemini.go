package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Provider computes embeddings using the Gemini embedding API.
type Provider struct {
	client *genai.Client
	model  string
}

// New creates a Provider bound to the given embedding model.
func New(ctx context.Context, apiKey, model string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Provider{client: client, model: model}, nil
}

// ComputeEmbedding returns the embedding vector for the provided text.
func (p *Provider) ComputeEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}
	// A single input was sent, so the first embedding is the result.
	return resp.Embeddings[0].Values, nil
}
