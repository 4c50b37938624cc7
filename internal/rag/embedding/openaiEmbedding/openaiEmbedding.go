package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	openAi *openai.Client
	model  string
	logger *logger_i.Logger
}

// NewClient builds the OpenAI embedding adapter.
func NewClient(apikey string, model string) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, faults.Unavailable("openai embedding", errors.New("OPENAI_API_KEY is not set"))
	}
	c := openai.NewClient(option.WithAPIKey(apikey))
	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI Embedding client created", "model", model)
	return &client{openAi: &c, model: model, logger: logger}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	resp, err := c.openAi.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model:      c.model,
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Dimensions: openai.Int(config.EmbeddingDimensions),
	})
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Data) != len(chunks) {
		return nil, fmt.Errorf("openai embedding: got %d vectors for %d inputs", len(resp.Data), len(chunks))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403, 429:
			return faults.Unavailable("openai embedding", err)
		}
	}
	return err
}
