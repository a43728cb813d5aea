package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ai-assistant/internal/chat"
)

// maxOutputTokens caps a single Claude completion.
const maxOutputTokens = 4096

// AnthropicClient serves the system/turn family through the Messages API.
// The system turn travels as a separate request field, only user/assistant
// turns form the message list, and the sampling temperature is not
// forwarded since this family does not accept it.
type AnthropicClient struct {
	client anthropic.Client
}

func NewAnthropic(apiKey, baseURL string) *AnthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicClient{client: anthropic.NewClient(opts...)}
}

func (c *AnthropicClient) Generate(ctx context.Context, req Request) (Reply, error) {
	var system string
	msgs := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, t := range req.Turns {
		switch t.Role {
		case chat.RoleSystem:
			system = t.Content
		case chat.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
		case chat.RoleAssistant:
			msgs = append(msgs, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(t.Content)},
			})
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxOutputTokens,
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create message: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	return Reply{
		Content: b.String(),
		Usage: &Usage{
			Family:              FamilySystemTurn,
			InputTokens:         resp.Usage.InputTokens,
			OutputTokens:        resp.Usage.OutputTokens,
			CacheCreationTokens: resp.Usage.CacheCreationInputTokens,
			CacheReadTokens:     resp.Usage.CacheReadInputTokens,
			StopReason:          string(resp.StopReason),
		},
	}, nil
}
