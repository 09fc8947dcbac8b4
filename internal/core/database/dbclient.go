package db

import (
	"context"
	"time"

	"github.com/mindsaathi/backend/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByUsername(ctx context.Context, username string) (user *models.User, err error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPreferences(ctx context.Context, id, languagePreference, locality string) (*models.User, error)
	UpdateUserStressLevel(ctx context.Context, id string, level int) error

	CreateMessage(ctx context.Context, msg *models.Message) error
	// ListRecentMessages returns non-incognito messages newest-first.
	ListRecentMessages(ctx context.Context, userID string, limit int) ([]models.Message, error)
	// ListMessagesBetween returns non-incognito messages in [from, to] oldest-first.
	ListMessagesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Message, error)

	// UpsertJournal replaces the whole entry for (user, date).
	UpsertJournal(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	// UpsertManualJournal updates only content, mood and embedding, keeping
	// any stress score and AI summary a generated entry already stored.
	UpsertManualJournal(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	ListJournals(ctx context.Context, userID string) ([]models.JournalEntry, error)
	GetJournalByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error)
	SearchJournals(ctx context.Context, userID string, queryVec []float32, limit int) ([]models.JournalEntry, error)

	Close() error
}
