package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/models"
)

const emotionContextMessages = 5

const emotionSystemPrompt = "You are an expert emotional intelligence analyzer. Analyze emotions deeply and accurately. Always respond with valid JSON only."

const emotionUserPromptFmt = `Based on the user's recent conversation: "%s", perform a detailed emotional analysis. Consider tone, word choice, and context. Return ONLY valid JSON (no markdown, no backticks): { "emotion": "happy|sad|anxious|stressed|neutral|angry|fearful", "stressLevel": 0-10, "description": "brief analysis", "confidence": 0-100 }`

var emotionLabels = map[string]bool{
	"happy": true, "sad": true, "anxious": true, "stressed": true,
	"neutral": true, "angry": true, "fearful": true,
}

// EmotionService asks the model for a structured emotional read of the
// user's recent conversation. Unparseable output degrades to a fixed
// neutral default instead of failing the caller.
type EmotionService struct {
	db           db.DbClient
	generator    core.TextGenerator
	emotionModel string
}

func NewEmotionService(dbclient db.DbClient, generator core.TextGenerator, emotionModel string) *EmotionService {
	return &EmotionService{db: dbclient, generator: generator, emotionModel: emotionModel}
}

// Analyze builds context from the user's last few messages and requests the
// structured emotion result.
func (s *EmotionService) Analyze(ctx context.Context, userID string) (*models.EmotionReport, error) {
	if s.generator == nil {
		return nil, ErrAIUnavailable
	}

	recent, err := s.db.ListRecentMessages(ctx, userID, emotionContextMessages)
	if err != nil {
		return nil, fmt.Errorf("load recent messages: %w", err)
	}
	// Stored newest-first; context reads chronologically.
	texts := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		texts = append(texts, recent[i].Content)
	}
	contextText := strings.Join(texts, " ")

	raw, err := s.generator.GenerateChat(ctx, []core.ChatTurn{
		{Role: core.RoleSystem, Content: emotionSystemPrompt},
		{Role: core.RoleUser, Content: fmt.Sprintf(emotionUserPromptFmt, contextText)},
	}, core.GenParams{
		Model:       s.emotionModel,
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("emotion analysis: %w", err)
	}

	report := parseEmotionReport(raw)
	return report, nil
}

// parseEmotionReport decodes the model output into the fixed result shape.
// Anything that doesn't fit the contract yields the neutral default.
func parseEmotionReport(raw string) *models.EmotionReport {
	var report models.EmotionReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return neutralReport()
	}
	if !emotionLabels[report.Emotion] {
		return neutralReport()
	}
	if report.StressLevel < 0 || report.StressLevel > 10 {
		return neutralReport()
	}
	if report.Confidence < 0 || report.Confidence > 100 {
		return neutralReport()
	}
	return &report
}

func neutralReport() *models.EmotionReport {
	return &models.EmotionReport{
		Emotion:     "neutral",
		StressLevel: 5,
		Description: "Unable to analyze. Please share more about how you are feeling.",
		Confidence:  0,
	}
}
