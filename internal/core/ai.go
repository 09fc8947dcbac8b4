package core

import "context"

// ChatTurn is one role-tagged block of conversational context.
type ChatTurn struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenParams are the fixed generation parameters for one request.
// Zero values mean "provider default".
type GenParams struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	TopP        float64
}

// TextGenerator is the capability the pipeline needs from a hosted LLM:
// generate text given role-tagged context. An empty string with a nil error
// means the model produced no content; callers decide the fallback.
type TextGenerator interface {
	GenerateChat(ctx context.Context, turns []ChatTurn, p GenParams) (string, error)
}

type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
