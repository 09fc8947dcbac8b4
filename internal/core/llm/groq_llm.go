package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mindsaathi/backend/internal/core"
)

// GroqLLM talks to Groq's OpenAI-compatible chat completions API.
type GroqLLM struct {
	client       openai.Client
	defaultModel string
}

func NewGroqLLM(apiKey, baseURL, defaultModel string) (*GroqLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if defaultModel == "" {
		defaultModel = "mixtral-8x7b-32768"
	}
	return &GroqLLM{client: openai.NewClient(opts...), defaultModel: defaultModel}, nil
}

func (g *GroqLLM) GenerateChat(ctx context.Context, turns []core.ChatTurn, p core.GenParams) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case core.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(t.Content))
		case core.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		default:
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}

	model := p.Model
	if model == "" {
		model = g.defaultModel
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = openai.Int(p.MaxTokens)
	}
	if p.Temperature > 0 {
		params.Temperature = openai.Float(p.Temperature)
	}
	if p.TopP > 0 {
		params.TopP = openai.Float(p.TopP)
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ core.TextGenerator = (*GroqLLM)(nil)
