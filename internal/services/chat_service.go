package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/core/prompt"
	"github.com/mindsaathi/backend/internal/core/stress"
	"github.com/mindsaathi/backend/internal/models"
)

const historyLimit = 50

// ChatService runs one chat turn: score the text, assemble the bounded
// context, call the generator, and persist the exchange unless incognito.
type ChatService struct {
	db        db.DbClient
	generator core.TextGenerator
	chatModel string
}

func NewChatService(dbclient db.DbClient, generator core.TextGenerator, chatModel string) *ChatService {
	return &ChatService{db: dbclient, generator: generator, chatModel: chatModel}
}

// TurnResult is what one chat turn returns to the caller.
type TurnResult struct {
	Reply       string `json:"response"`
	StressScore int    `json:"stressScore"`
}

// Exchange handles one turn for the given user. history is the prior
// conversation as the client holds it, oldest-first.
func (s *ChatService) Exchange(ctx context.Context, user *models.User, content string, incognito bool, history []core.ChatTurn) (*TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if s.generator == nil {
		return nil, ErrAIUnavailable
	}

	score := stress.DetectLevel(content)

	turns := prompt.AssembleTurns(prompt.BuildSystemPrompt(user), history, content)

	reply, err := s.generator.GenerateChat(ctx, turns, core.GenParams{
		Model:       s.chatModel,
		MaxTokens:   prompt.ChatMaxTokens,
		Temperature: prompt.ChatTemperature,
		TopP:        prompt.ChatTopP,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	if reply == "" {
		// Empty model output is a defined recovery path, not an error.
		reply = prompt.FallbackReply(user.LanguagePreference)
	}

	if !incognito {
		// The user turn is persisted before the assistant reply.
		userMsg := &models.Message{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Role:        models.RoleUser,
			Content:     content,
			Type:        models.MessageTypeText,
			StressScore: &score,
			CreatedAt:   time.Now(),
		}
		if err := s.db.CreateMessage(ctx, userMsg); err != nil {
			return nil, fmt.Errorf("persist user message: %w", err)
		}

		assistantMsg := &models.Message{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Role:      models.RoleAssistant,
			Content:   reply,
			Type:      models.MessageTypeText,
			CreatedAt: time.Now(),
		}
		if err := s.db.CreateMessage(ctx, assistantMsg); err != nil {
			return nil, fmt.Errorf("persist assistant message: %w", err)
		}

		if score > 0 {
			if err := s.db.UpdateUserStressLevel(ctx, user.ID, score); err != nil {
				return nil, fmt.Errorf("update stress level: %w", err)
			}
		}
	}

	return &TurnResult{Reply: reply, StressScore: score}, nil
}

// History returns the user's last 50 non-incognito messages, oldest-first.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.Message, error) {
	msgs, err := s.db.ListRecentMessages(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	// Stored newest-first; the client wants chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
