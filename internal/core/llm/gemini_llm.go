package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mindsaathi/backend/internal/core"
)

// GeminiLLM is the alternate text-generation provider, selected with
// AI_PROVIDER=gemini.
type GeminiLLM struct {
	client    *genai.Client
	modelName string
}

func NewGeminiLLM(ctx context.Context, apiKey, modelName string) (*GeminiLLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiLLM{client: cl, modelName: modelName}, nil
}

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiLLM) GenerateChat(ctx context.Context, turns []core.ChatTurn, p core.GenParams) (string, error) {
	if len(turns) == 0 {
		return "", nil
	}

	m := g.client.GenerativeModel(g.modelName)
	if p.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(p.MaxTokens))
	}
	if p.Temperature > 0 {
		m.SetTemperature(float32(p.Temperature))
	}
	if p.TopP > 0 {
		m.SetTopP(float32(p.TopP))
	}

	// Gemini separates the system instruction from the turn history and the
	// history from the final message.
	history := turns
	if history[0].Role == core.RoleSystem {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(history[0].Content)},
		}
		history = history[1:]
	}
	if len(history) == 0 {
		return "", nil
	}
	last := history[len(history)-1]
	history = history[:len(history)-1]

	cs := m.StartChat()
	for _, t := range history {
		role := "user"
		if t.Role == core.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

var _ core.TextGenerator = (*GeminiLLM)(nil)
