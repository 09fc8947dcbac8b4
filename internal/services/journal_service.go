package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/core/stress"
	"github.com/mindsaathi/backend/internal/models"
)

const journalSystemPrompt = "You are a mental health journaling assistant. Convert the following conversation into a warm, reflective, first-person journal entry. Make it personal, empathetic, and end with a positive affirmation or coping tip."

const journalMaxTokens = 400

const searchLimit = 10

// JournalService turns a day's conversation into a journal entry, accepts
// manual entries, and answers semantic search over past entries.
type JournalService struct {
	db           db.DbClient
	generator    core.TextGenerator
	embedder     core.EmbeddingProvider
	journalModel string
}

func NewJournalService(dbclient db.DbClient, generator core.TextGenerator, embedder core.EmbeddingProvider, journalModel string) *JournalService {
	return &JournalService{db: dbclient, generator: generator, embedder: embedder, journalModel: journalModel}
}

// GenerateToday summarizes today's conversation into a journal entry and
// upserts it keyed by (user, date). A day with no messages at all is
// rejected before the mood classifier ever runs.
func (s *JournalService) GenerateToday(ctx context.Context, userID string, now time.Time) (*models.JournalEntry, error) {
	if s.generator == nil {
		return nil, ErrAIUnavailable
	}

	date := now.Format("2006-01-02")
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	messages, err := s.db.ListMessagesBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load today's messages: %w", err)
	}
	if len(messages) == 0 {
		return nil, ErrNoConversationToday
	}

	var lines []string
	var scores []int
	for _, m := range messages {
		speaker := "MindSaathi"
		if m.Role == models.RoleUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+m.Content)
		if m.StressScore != nil {
			scores = append(scores, *m.StressScore)
		}
	}
	convoText := strings.Join(lines, "\n")

	avg := stress.Average(scores)
	mood := stress.MoodFor(avg)

	content, err := s.generator.GenerateChat(ctx, []core.ChatTurn{
		{Role: core.RoleSystem, Content: journalSystemPrompt},
		{Role: core.RoleUser, Content: convoText},
	}, core.GenParams{
		Model:     s.journalModel,
		MaxTokens: journalMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate journal entry: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("journal entry: %w", ErrEmptyContent)
	}

	entry := &models.JournalEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		Content:     content,
		Mood:        mood,
		StressScore: int(math.Round(avg)),
		AISummary:   content,
		Embedding:   s.embed(ctx, content),
		CreatedAt:   time.Now(),
	}
	return s.db.UpsertJournal(ctx, entry)
}

// ManualEntry upserts today's journal entry directly, bypassing the scorer.
func (s *JournalService) ManualEntry(ctx context.Context, userID, content, mood string, now time.Time) (*models.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !stress.ValidMood(mood) {
		mood = stress.MoodOkay
	}

	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      now.Format("2006-01-02"),
		Content:   content,
		Mood:      mood,
		Embedding: s.embed(ctx, content),
		CreatedAt: time.Now(),
	}
	return s.db.UpsertManualJournal(ctx, entry)
}

func (s *JournalService) List(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return s.db.ListJournals(ctx, userID)
}

func (s *JournalService) GetByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	entry, err := s.db.GetJournalByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Search returns the entries most similar in meaning to the query.
func (s *JournalService) Search(ctx context.Context, userID, query string) ([]models.JournalEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyContent
	}
	if s.embedder == nil {
		return nil, ErrAIUnavailable
	}
	vecs, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, errors.New("embed query: no embedding returned")
	}
	return s.db.SearchJournals(ctx, userID, vecs[0], searchLimit)
}

// embed is best-effort: entries are still stored when the embedder is
// unavailable, they just won't show up in semantic search.
func (s *JournalService) embed(ctx context.Context, content string) []float32 {
	if s.embedder == nil {
		return nil
	}
	vecs, err := s.embedder.EmbedTexts(ctx, []string{content})
	if err != nil || len(vecs) == 0 {
		log.Printf("WARN: journal embedding failed: %v", err)
		return nil
	}
	return vecs[0]
}
