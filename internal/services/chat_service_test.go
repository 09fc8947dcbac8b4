package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindsaathi/backend/internal/core"
	"github.com/mindsaathi/backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:                 "u1",
		Username:           "asha",
		LanguagePreference: models.LangEnglish,
		Locality:           models.LocalityUrban,
	}
}

func TestExchangeRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	svc := NewChatService(newFakeDB(), &fakeGenerator{reply: "ok"}, "m")
	if _, err := svc.Exchange(context.Background(), testUser(), "   ", false, nil); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err=%v, want ErrEmptyContent", err)
	}
}

func TestExchangeWithoutGenerator(t *testing.T) {
	t.Parallel()

	svc := NewChatService(newFakeDB(), nil, "m")
	if _, err := svc.Exchange(context.Background(), testUser(), "hello", false, nil); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("err=%v, want ErrAIUnavailable", err)
	}
}

func TestExchangePersistsTurn(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	gen := &fakeGenerator{reply: "tell me more"}
	svc := NewChatService(fdb, gen, "m")

	res, err := svc.Exchange(context.Background(), testUser(), "I feel hopeless", false, nil)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if res.Reply != "tell me more" {
		t.Fatalf("Reply=%q", res.Reply)
	}
	if res.StressScore != 3 {
		t.Fatalf("StressScore=%d, want 3", res.StressScore)
	}

	if len(fdb.messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(fdb.messages))
	}
	// User turn is logically prior to the assistant reply.
	if fdb.messages[0].Role != models.RoleUser || fdb.messages[1].Role != models.RoleAssistant {
		t.Fatalf("wrong persistence order: %q then %q", fdb.messages[0].Role, fdb.messages[1].Role)
	}
	if fdb.messages[0].StressScore == nil || *fdb.messages[0].StressScore != 3 {
		t.Fatalf("user message score=%v, want 3", fdb.messages[0].StressScore)
	}
	if fdb.messages[1].StressScore != nil {
		t.Fatal("assistant message should carry no stress score")
	}

	if len(fdb.stressUpdates) != 1 || fdb.stressUpdates[0] != 3 {
		t.Fatalf("stressUpdates=%v, want [3]", fdb.stressUpdates)
	}
}

func TestExchangeStampsCreatedAt(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{reply: "ok"}, "m")

	before := time.Now()
	if _, err := svc.Exchange(context.Background(), testUser(), "hello", false, nil); err != nil {
		t.Fatalf("Exchange: %v", err)
	}

	// Both persisted rows carry a real creation time; date-window queries
	// and recency ordering depend on it.
	for i, m := range fdb.messages {
		if m.CreatedAt.IsZero() || m.CreatedAt.Before(before) {
			t.Fatalf("message %d CreatedAt=%v, want a timestamp at persistence time", i, m.CreatedAt)
		}
	}
}

func TestExchangeZeroScoreSkipsStressUpdate(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{reply: "go on"}, "m")

	res, err := svc.Exchange(context.Background(), testUser(), "the weather is nice", false, nil)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if res.StressScore != 0 {
		t.Fatalf("StressScore=%d, want 0", res.StressScore)
	}
	if len(fdb.messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(fdb.messages))
	}
	if len(fdb.stressUpdates) != 0 {
		t.Fatalf("stressUpdates=%v, want none", fdb.stressUpdates)
	}
}

func TestExchangeIncognitoPersistsNothing(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{reply: "I hear you"}, "m")

	res, err := svc.Exchange(context.Background(), testUser(), "I feel hopeless", true, nil)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if res.Reply == "" || res.StressScore != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(fdb.messages) != 0 {
		t.Fatalf("incognito turn persisted %d messages", len(fdb.messages))
	}
	if len(fdb.stressUpdates) != 0 {
		t.Fatalf("incognito turn updated stress level: %v", fdb.stressUpdates)
	}
}

func TestExchangeEmptyReplyFallsBack(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{reply: ""}, "m")

	user := testUser()
	user.LanguagePreference = models.LangHindi
	res, err := svc.Exchange(context.Background(), user, "hello", false, nil)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if res.Reply == "" {
		t.Fatal("empty model output should be replaced with the fallback reply")
	}
	// The fallback turn still persists normally.
	if len(fdb.messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(fdb.messages))
	}
	if fdb.messages[1].Content != res.Reply {
		t.Fatalf("assistant message %q != reply %q", fdb.messages[1].Content, res.Reply)
	}
}

func TestExchangeTransportErrorPropagates(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{err: errors.New("connection reset")}, "m")

	if _, err := svc.Exchange(context.Background(), testUser(), "hello", false, nil); err == nil {
		t.Fatal("transport failure should surface as an error")
	}
	if len(fdb.messages) != 0 {
		t.Fatal("failed turn should not persist messages")
	}
}

func TestExchangeContextShape(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "ok"}
	svc := NewChatService(newFakeDB(), gen, "chat-model")

	history := []core.ChatTurn{
		{Role: core.RoleUser, Content: "earlier"},
		{Role: core.RoleAssistant, Content: "and then?"},
	}
	if _, err := svc.Exchange(context.Background(), testUser(), "now this", true, history); err != nil {
		t.Fatalf("Exchange: %v", err)
	}

	if len(gen.gotTurns) != 4 {
		t.Fatalf("generator got %d turns, want 4", len(gen.gotTurns))
	}
	if gen.gotTurns[0].Role != core.RoleSystem {
		t.Fatal("first turn should be the system block")
	}
	if last := gen.gotTurns[3]; last.Role != core.RoleUser || last.Content != "now this" {
		t.Fatalf("last turn=%+v", last)
	}
	if gen.gotParams.Model != "chat-model" || gen.gotParams.MaxTokens != 250 {
		t.Fatalf("params=%+v", gen.gotParams)
	}
}

func TestHistoryChronological(t *testing.T) {
	t.Parallel()

	fdb := newFakeDB()
	svc := NewChatService(fdb, &fakeGenerator{reply: "r"}, "m")

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.Exchange(context.Background(), testUser(), content, false, nil); err != nil {
			t.Fatalf("Exchange: %v", err)
		}
	}

	msgs, err := svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 6 {
		t.Fatalf("got %d messages, want 6", len(msgs))
	}
	if msgs[0].Content != "one" || msgs[len(msgs)-1].Content != "r" {
		t.Fatalf("history not chronological: first=%q last=%q", msgs[0].Content, msgs[len(msgs)-1].Content)
	}
}
