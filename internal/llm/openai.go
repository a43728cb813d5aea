package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient serves the turn-array family through the Chat Completions
// API. All turns are sent verbatim as the ordered message list and the
// sampling temperature is attached.
type OpenAIClient struct {
	client *openai.Client
	// supportsReasoning mirrors the proxy capability flag: when false any
	// requested reasoning effort is dropped silently instead of forwarded.
	supportsReasoning bool
}

func NewOpenAI(apiKey, baseURL string, supportsReasoning bool) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:            openai.NewClientWithConfig(config),
		supportsReasoning: supportsReasoning,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Reply, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Turns))
	for _, t := range req.Turns {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(t.Role), Content: t.Content})
	}

	oaReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
	}
	if req.ReasoningEffort != "" && c.supportsReasoning {
		oaReq.ReasoningEffort = req.ReasoningEffort
	}

	resp, err := c.client.CreateChatCompletion(ctx, oaReq)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Reply{}, fmt.Errorf("chat completion returned no choices")
	}

	return Reply{
		Content: resp.Choices[0].Message.Content,
		Usage: &Usage{
			Family:           FamilyTurnArray,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
