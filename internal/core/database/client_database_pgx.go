package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mindsaathi/backend/internal/config"
	"github.com/mindsaathi/backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: sqlDB}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, username, password_hash, language_preference, locality, stress_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()), COALESCE($8, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.Username, user.PasswordHash, user.LanguagePreference, user.Locality,
		user.StressLevel, user.CreatedAt, user.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `
		SELECT id, username, password_hash, language_preference, locality, stress_level, created_at, updated_at
		FROM users WHERE username = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.LanguagePreference, &u.Locality,
		&u.StressLevel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *DatabaseClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const q = `
		SELECT id, username, password_hash, language_preference, locality, stress_level, created_at, updated_at
		FROM users WHERE id = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.LanguagePreference, &u.Locality,
		&u.StressLevel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *DatabaseClient) UpdateUserPreferences(ctx context.Context, id, languagePreference, locality string) (*models.User, error) {
	const q = `
		UPDATE users
		SET language_preference = $2, locality = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, username, password_hash, language_preference, locality, stress_level, created_at, updated_at
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, id, languagePreference, locality).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.LanguagePreference, &u.Locality,
		&u.StressLevel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserStressLevel overwrites the rolling stress scalar. Last write
// wins; concurrent turns for one account are not synchronized.
func (c *DatabaseClient) UpdateUserStressLevel(ctx context.Context, id string, level int) error {
	const q = `
		UPDATE users
		SET stress_level = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, level)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// Implementing the db interface for messages

func (c *DatabaseClient) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg == nil {
		return errors.New("nil message")
	}
	const q = `
		INSERT INTO messages (id, user_id, role, content, type, stress_score, is_incognito, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		msg.ID, msg.UserID, msg.Role, msg.Content, msg.Type, msg.StressScore, msg.IsIncognito, msg.CreatedAt)
	return err
}

func (c *DatabaseClient) ListRecentMessages(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	const q = `
		SELECT id, user_id, role, content, type, stress_score, is_incognito, created_at
		FROM messages
		WHERE user_id = $1 AND is_incognito = false
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := c.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (c *DatabaseClient) ListMessagesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Message, error) {
	const q = `
		SELECT id, user_id, role, content, type, stress_score, is_incognito, created_at
		FROM messages
		WHERE user_id = $1 AND is_incognito = false AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`
	rows, err := c.db.QueryContext(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Role, &m.Content, &m.Type, &m.StressScore, &m.IsIncognito, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Implementing the db interface for journals

func (c *DatabaseClient) UpsertJournal(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	if entry == nil {
		return nil, errors.New("nil journal entry")
	}
	const q = `
		INSERT INTO journals (id, user_id, date, content, mood, stress_score, ai_summary, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))
		ON CONFLICT (user_id, date) DO UPDATE
		SET content = EXCLUDED.content,
		    mood = EXCLUDED.mood,
		    stress_score = EXCLUDED.stress_score,
		    ai_summary = EXCLUDED.ai_summary,
		    embedding = EXCLUDED.embedding
		RETURNING id, user_id, date, content, mood, stress_score, ai_summary, created_at
	`
	return c.upsertJournal(ctx, q, entry)
}

func (c *DatabaseClient) UpsertManualJournal(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	if entry == nil {
		return nil, errors.New("nil journal entry")
	}
	const q = `
		INSERT INTO journals (id, user_id, date, content, mood, stress_score, ai_summary, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))
		ON CONFLICT (user_id, date) DO UPDATE
		SET content = EXCLUDED.content,
		    mood = EXCLUDED.mood,
		    embedding = EXCLUDED.embedding
		RETURNING id, user_id, date, content, mood, stress_score, ai_summary, created_at
	`
	return c.upsertJournal(ctx, q, entry)
}

func (c *DatabaseClient) upsertJournal(ctx context.Context, q string, entry *models.JournalEntry) (*models.JournalEntry, error) {
	var vec any
	if len(entry.Embedding) > 0 {
		vec = pgvector.NewVector(entry.Embedding)
	}
	var out models.JournalEntry
	err := c.db.QueryRowContext(ctx, q,
		entry.ID, entry.UserID, entry.Date, entry.Content, entry.Mood,
		entry.StressScore, entry.AISummary, vec, entry.CreatedAt,
	).Scan(
		&out.ID, &out.UserID, &out.Date, &out.Content, &out.Mood,
		&out.StressScore, &out.AISummary, &out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *DatabaseClient) ListJournals(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	const q = `
		SELECT id, user_id, date, content, mood, stress_score, ai_summary, created_at
		FROM journals
		WHERE user_id = $1
		ORDER BY date DESC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var j models.JournalEntry
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.Date, &j.Content, &j.Mood, &j.StressScore, &j.AISummary, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) GetJournalByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	const q = `
		SELECT id, user_id, date, content, mood, stress_score, ai_summary, created_at
		FROM journals
		WHERE user_id = $1 AND date = $2
	`
	var j models.JournalEntry
	err := c.db.QueryRowContext(ctx, q, userID, date).Scan(
		&j.ID, &j.UserID, &j.Date, &j.Content, &j.Mood, &j.StressScore, &j.AISummary, &j.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// SearchJournals finds the entries most similar to a query embedding.
func (c *DatabaseClient) SearchJournals(ctx context.Context, userID string, queryVec []float32, limit int) ([]models.JournalEntry, error) {
	const q = `
		SELECT id, user_id, date, content, mood, stress_score, ai_summary, created_at
		FROM journals
		WHERE user_id = $1 AND embedding IS NOT NULL
		ORDER BY embedding <-> $2
		LIMIT $3
	`
	vec := pgvector.NewVector(queryVec)
	rows, err := c.db.QueryContext(ctx, q, userID, vec, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var j models.JournalEntry
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.Date, &j.Content, &j.Mood, &j.StressScore, &j.AISummary, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
