package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	middleware "github.com/mindsaathi/backend/internal/api/middlewares"
	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/models"
	"github.com/mindsaathi/backend/internal/services"
)

type ChatHandler struct {
	dbclient db.DbClient
	chat     *services.ChatService
	emotion  *services.EmotionService
	media    *services.MediaService
}

func NewChatHandler(dbclient db.DbClient, chat *services.ChatService, emotion *services.EmotionService, media *services.MediaService) *ChatHandler {
	return &ChatHandler{dbclient: dbclient, chat: chat, emotion: emotion, media: media}
}

type messageRequest struct {
	Content             string          `json:"content"`
	IsIncognito         bool            `json:"isIncognito"`
	ConversationHistory []core.ChatTurn `json:"conversationHistory"`
}

// Message handles POST /api/chat/message: one full chat turn.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := h.chat.Exchange(ctx, user, req.Content, req.IsIncognito, req.ConversationHistory)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrAIUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			log.Printf("chat turn failed: %v", err)
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(result)
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	msgs, err := h.chat.History(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	json.NewEncoder(w).Encode(msgs)
}

type analyzeImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
	IsIncognito bool   `json:"isIncognito"`
}

// AnalyzeImage handles POST /api/chat/analyze-image: a structured emotion
// read over recent conversation; the snapshot itself is archived if storage
// is configured.
func (h *ChatHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req analyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if req.ImageBase64 != "" && !req.IsIncognito {
		if _, err := h.media.ArchiveBase64(ctx, user.ID, "image", "jpeg", req.ImageBase64); err != nil {
			log.Printf("WARN: snapshot archive failed: %v", err)
		}
	}

	report, err := h.emotion.Analyze(ctx, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrAIUnavailable) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		log.Printf("emotion analysis failed: %v", err)
		http.Error(w, "image analysis failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(report)
}

type transcribeRequest struct {
	AudioBase64     string `json:"audioBase64"`
	AudioFormat     string `json:"audioFormat"`
	TranscribedText string `json:"transcribedText"`
}

type transcribeResponse struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Transcribe handles POST /api/chat/transcribe. Transcription itself happens
// client-side; this endpoint accepts the transcribed text and archives the
// raw audio when provided.
func (h *ChatHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.TranscribedText == "" && req.AudioBase64 == "" {
		http.Error(w, "either transcribedText or audio data is required", http.StatusBadRequest)
		return
	}

	if req.AudioBase64 != "" {
		format := req.AudioFormat
		if format == "" {
			format = "wav"
		}
		if _, err := h.media.ArchiveBase64(ctx, user.ID, "speech", format, req.AudioBase64); err != nil {
			log.Printf("WARN: audio archive failed: %v", err)
		}
	}

	if req.TranscribedText != "" {
		json.NewEncoder(w).Encode(transcribeResponse{
			Text:      req.TranscribedText,
			Timestamp: time.Now(),
			Source:    "frontend",
		})
		return
	}

	json.NewEncoder(w).Encode(transcribeResponse{
		Text:      "Transcription service will be available with audio support",
		Timestamp: time.Now(),
		Source:    "placeholder",
	})
}

// currentUser resolves the authenticated account from the request context.
func (h *ChatHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	user, err := h.dbclient.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}
