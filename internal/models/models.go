package models

import (
	"time"
)

// Language preferences and localities supported for prompt personalization.
const (
	LangEnglish = "english"
	LangHindi   = "hindi"

	LocalityUrban = "urban"
	LocalityRural = "rural"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message modalities.
const (
	MessageTypeText   = "text"
	MessageTypeSpeech = "speech"
	MessageTypeImage  = "image"
)

// User represents an authenticated account.
type User struct {
	ID                 string    `db:"id" json:"id"`
	Username           string    `db:"username" json:"-"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	LanguagePreference string    `db:"language_preference" json:"languagePreference"`
	Locality           string    `db:"locality" json:"locality"`
	StressLevel        int       `db:"stress_level" json:"stressLevel"` // last observed score, 0-10
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Message is one side of a chat turn. Rows are insert-only.
// StressScore is nil for assistant replies and for turns the scorer never saw.
type Message struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Role        string    `db:"role" json:"role"`
	Content     string    `db:"content" json:"content"`
	Type        string    `db:"type" json:"type"` // text | speech | image
	StressScore *int      `db:"stress_score" json:"stressScore"`
	IsIncognito bool      `db:"is_incognito" json:"isIncognito"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// JournalEntry is one reflective entry per user per calendar date.
// Date is YYYY-MM-DD; (UserID, Date) is unique and entries are upserted.
type JournalEntry struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Date        string    `db:"date" json:"date"`
	Content     string    `db:"content" json:"content"`
	Mood        string    `db:"mood" json:"mood"` // great | good | okay | low | terrible
	StressScore int       `db:"stress_score" json:"stressScore"`
	AISummary   string    `db:"ai_summary" json:"aiSummary"`
	Embedding   []float32 `db:"embedding" json:"-"` // pgvector column, optional
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// EmotionReport is the structured result of an emotion analysis request.
type EmotionReport struct {
	Emotion     string `json:"emotion"`
	StressLevel int    `json:"stressLevel"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
}
