package openaillm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client *openai.Client
	model  string
	logger *logger_i.Logger
}

// NewClient builds an OpenAI-backed Provider, the alternative to Gemini.
func NewClient(apikey string, model string) (llm.Provider, error) {
	if apikey == "" {
		return nil, faults.Unavailable("openai", errors.New("OPENAI_API_KEY is not set"))
	}
	c := openai.NewClient(option.WithAPIKey(apikey))
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", model)
	return &llmClient{client: &c, model: model, logger: logger}, nil
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
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemText),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", classify(err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai: empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403, 429:
			return faults.Unavailable("openai", err)
		}
	}
	return err
}
