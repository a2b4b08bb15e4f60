package embedding

import "context"

// Provider defines an interface for computing embeddings from text.
type Provider interface {
	ComputeEmbedding(ctx context.Context, text string) ([]float32, error)
}
