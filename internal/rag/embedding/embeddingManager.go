package embedding

import "context"

// Embedder turns text into vectors. Implementations must be deterministic for
// identical input so persisted indexes recall the exact vectors they stored.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
