package services

import (
	"context"
	"errors"
	"time"

	"github.com/mindsaathi/backend/internal/core"
	"github.com/mindsaathi/backend/internal/models"
)

// fakeDB is an in-memory DbClient used to test service orchestration.
type fakeDB struct {
	users         map[string]*models.User
	messages      []models.Message
	journals      map[string]models.JournalEntry // keyed user|date
	stressUpdates []int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[string]*models.User{},
		journals: map[string]models.JournalEntry{},
	}
}

func (f *fakeDB) CreateUser(_ context.Context, u *models.User) error {
	if _, ok := f.users[u.Username]; ok {
		return errors.New("duplicate username")
	}
	f.users[u.Username] = u
	return nil
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeDB) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) UpdateUserPreferences(_ context.Context, id, lang, locality string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			u.LanguagePreference = lang
			u.Locality = locality
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeDB) UpdateUserStressLevel(_ context.Context, id string, level int) error {
	f.stressUpdates = append(f.stressUpdates, level)
	for _, u := range f.users {
		if u.ID == id {
			u.StressLevel = level
		}
	}
	return nil
}

func (f *fakeDB) CreateMessage(_ context.Context, msg *models.Message) error {
	if msg.Content == "" {
		return errors.New("empty content")
	}
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeDB) ListRecentMessages(_ context.Context, userID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for i := len(f.messages) - 1; i >= 0 && len(out) < limit; i-- {
		m := f.messages[i]
		if m.UserID == userID && !m.IsIncognito {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDB) ListMessagesBetween(_ context.Context, userID string, from, to time.Time) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.UserID == userID && !m.IsIncognito && !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDB) UpsertJournal(_ context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	if entry.Content == "" {
		return nil, errors.New("empty content")
	}
	e := *entry
	f.journals[entry.UserID+"|"+entry.Date] = e
	return &e, nil
}

func (f *fakeDB) UpsertManualJournal(_ context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	if entry.Content == "" {
		return nil, errors.New("empty content")
	}
	key := entry.UserID + "|" + entry.Date
	e := *entry
	if prev, ok := f.journals[key]; ok {
		e.StressScore = prev.StressScore
		e.AISummary = prev.AISummary
	}
	f.journals[key] = e
	return &e, nil
}

func (f *fakeDB) ListJournals(_ context.Context, userID string) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, j := range f.journals {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeDB) GetJournalByDate(_ context.Context, userID, date string) (*models.JournalEntry, error) {
	if j, ok := f.journals[userID+"|"+date]; ok {
		return &j, nil
	}
	return nil, nil
}

func (f *fakeDB) SearchJournals(_ context.Context, userID string, _ []float32, limit int) ([]models.JournalEntry, error) {
	out, _ := f.ListJournals(context.Background(), userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDB) Close() error { return nil }

// fakeGenerator records the turns it was given and replies with a canned
// string (or error).
type fakeGenerator struct {
	reply string
	err   error

	gotTurns  []core.ChatTurn
	gotParams core.GenParams
}

func (g *fakeGenerator) GenerateChat(_ context.Context, turns []core.ChatTurn, p core.GenParams) (string, error) {
	g.gotTurns = turns
	g.gotParams = p
	return g.reply, g.err
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	empty bool // return no vectors and no error
}

func (e *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.empty {
		return nil, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vec
	}
	return out, nil
}
