package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mindsaathi/backend/internal/core"
	"github.com/mindsaathi/backend/internal/models"
)

func TestAssembleTurnsWindow(t *testing.T) {
	t.Parallel()

	history := make([]core.ChatTurn, 0, 15)
	for i := 0; i < 15; i++ {
		role := core.RoleUser
		if i%2 == 1 {
			role = core.RoleAssistant
		}
		history = append(history, core.ChatTurn{Role: role, Content: fmt.Sprintf("turn-%d", i)})
	}

	turns := AssembleTurns("sys", history, "hello")

	if len(turns) != TrailingWindow+2 {
		t.Fatalf("len=%d, want %d", len(turns), TrailingWindow+2)
	}
	if turns[0].Role != core.RoleSystem || turns[0].Content != "sys" {
		t.Fatalf("position 0 = %+v, want system block", turns[0])
	}
	// Exactly the last 10 turns, chronological order preserved.
	for i := 0; i < TrailingWindow; i++ {
		want := fmt.Sprintf("turn-%d", 5+i)
		if turns[1+i].Content != want {
			t.Fatalf("turns[%d].Content=%q, want %q", 1+i, turns[1+i].Content, want)
		}
	}
	last := turns[len(turns)-1]
	if last.Role != core.RoleUser || last.Content != "hello" {
		t.Fatalf("final turn = %+v, want new user message", last)
	}
}

func TestAssembleTurnsShortHistory(t *testing.T) {
	t.Parallel()

	turns := AssembleTurns("sys", []core.ChatTurn{{Role: core.RoleUser, Content: "hi"}}, "again")
	if len(turns) != 3 {
		t.Fatalf("len=%d, want 3", len(turns))
	}
	if turns[1].Content != "hi" || turns[2].Content != "again" {
		t.Fatalf("unexpected order: %+v", turns)
	}
}

func TestBuildSystemPromptLanguage(t *testing.T) {
	t.Parallel()

	en := BuildSystemPrompt(&models.User{LanguagePreference: models.LangEnglish, Locality: models.LocalityUrban})
	hi := BuildSystemPrompt(&models.User{LanguagePreference: models.LangHindi, Locality: models.LocalityUrban})

	if en == hi {
		t.Fatal("system prompt did not change with language preference")
	}
	if !strings.Contains(en, "Always respond in English") {
		t.Fatal("english prompt missing language instruction")
	}
	if !strings.Contains(hi, "Always respond in Hindi") {
		t.Fatal("hindi prompt missing language instruction")
	}
}

func TestBuildSystemPromptLocality(t *testing.T) {
	t.Parallel()

	urban := BuildSystemPrompt(&models.User{LanguagePreference: models.LangEnglish, Locality: models.LocalityUrban})
	rural := BuildSystemPrompt(&models.User{LanguagePreference: models.LangEnglish, Locality: models.LocalityRural})

	if !strings.Contains(urban, "from urban India") {
		t.Fatal("urban prompt missing locality")
	}
	if !strings.Contains(rural, "from rural India") {
		t.Fatal("rural prompt missing locality")
	}
}

func TestFallbackReply(t *testing.T) {
	t.Parallel()

	if FallbackReply(models.LangHindi) == FallbackReply(models.LangEnglish) {
		t.Fatal("fallback reply should differ per language")
	}
	if FallbackReply("") != FallbackReply(models.LangEnglish) {
		t.Fatal("unknown language should fall back to english")
	}
}
