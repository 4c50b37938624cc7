package googleEmbedding

import (
	"context"
	"errors"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"google.golang.org/genai"
)

var dimension int32 = config.EmbeddingDimensions

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// NewClient builds the Gemini embedding adapter.
func NewClient(ctx context.Context, modelName string, apikey string) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return nil, faults.Unavailable("google embedding", err)
	}
	logger.Info("Google Embedding client created", "model", modelName)
	return &client{genAi: c, model: modelName, logger: logger}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	result, err := c.doCall(callCtx, genai.Text(query))
	if err != nil {
		return nil, classify(err)
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("google embedding: empty response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	result, err := c.doCall(callCtx, getContent(chunks))
	if err != nil && doRetry(err, c.logger) {
		time.Sleep(5 * time.Second)
		c.logger.Debug("Retrying batch embedding after rate limit")
		result, err = c.doCall(callCtx, getContent(chunks))
	}
	if err != nil {
		c.logger.Error("Error getting Embeddings from Google", "error", err)
		return nil, classify(err)
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, r := range result.Embeddings {
		vectors = append(vectors, r.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		log.Error("Rate limit hit", "error", err)
		return true
	}
	return false
}

func classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403, 429:
			return faults.Unavailable("google embedding", err)
		}
	}
	return err
}
