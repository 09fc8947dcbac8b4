package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	middleware "github.com/mindsaathi/backend/internal/api/middlewares"
	"github.com/mindsaathi/backend/internal/models"
	"github.com/mindsaathi/backend/internal/services"
)

type JournalHandler struct {
	journal *services.JournalService
}

func NewJournalHandler(journal *services.JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// Generate handles POST /api/journal/generate.
func (h *JournalHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entry, err := h.journal.GenerateToday(r.Context(), userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoConversationToday):
			http.Error(w, "No conversations found for today", http.StatusBadRequest)
		case errors.Is(err, services.ErrAIUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		case errors.Is(err, services.ErrEmptyContent):
			http.Error(w, "invalid journal content", http.StatusBadRequest)
		default:
			log.Printf("journal generation failed: %v", err)
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(entry)
}

type manualEntryRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// Manual handles POST /api/journal/manual.
func (h *JournalHandler) Manual(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req manualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entry, err := h.journal.ManualEntry(r.Context(), userID, req.Content, req.Mood, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(entry)
}

// List handles GET /api/journal.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.journal.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	json.NewEncoder(w).Encode(entries)
}

// GetByDate handles GET /api/journal/{date}.
func (h *JournalHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entry, err := h.journal.GetByDate(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "No journal found for this date", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(entry)
}

// Search handles GET /api/journal/search?q=.
func (h *JournalHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.journal.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			http.Error(w, "query is required", http.StatusBadRequest)
		case errors.Is(err, services.ErrAIUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			log.Printf("journal search failed: %v", err)
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	json.NewEncoder(w).Encode(entries)
}

// requestUserID pulls the authenticated user id set by the JWT middleware.
func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}
