package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewClient builds the Gemini-backed Provider.
func NewClient(ctx context.Context, apikey string, modelName string) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, faults.Unavailable("gemini", err)
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.GenerationCallTimeout)
	defer cancel()

	contextText := strings.Join(matches, "\n\n---\n\n")
	userPrompt := fmt.Sprintf(
		"Context from the document:\n--------------------------\n%s\n--------------------------\n\nQuestion: %s\n\nAnswer based strictly on the context above:",
		contextText, userQuery)

	return c.call(callCtx, config.GroundingContext, userPrompt)
}

func (c *llmClient) Summarize(ctx context.Context, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.SummaryCallTimeout)
	defer cancel()

	return c.call(callCtx, config.SummaryInstruction, text)
}

func (c *llmClient) Complete(ctx context.Context, instruction string, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.GenerationCallTimeout)
	defer cancel()

	return c.call(callCtx, instruction, prompt)
}

func (c *llmClient) call(ctx context.Context, systemText string, userPrompt string) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemText}},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt), contentConfig)
	if err != nil {
		return "", classify(err)
	}
	return result.Text(), nil
}

// classify marks auth/quota failures as systemic so summarization stops the
// pass instead of burning through every remaining segment.
func classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403, 429:
			return faults.Unavailable("gemini", err)
		}
	}
	return err
}
