package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/models"
)

type UserHandler struct {
	dbclient db.DbClient
}

func NewUserHandler(dbclient db.DbClient) *UserHandler {
	return &UserHandler{dbclient: dbclient}
}

type profileResponse struct {
	ID                 string    `json:"id"`
	LanguagePreference string    `json:"languagePreference"`
	Locality           string    `json:"locality"`
	StressLevel        int       `json:"stressLevel"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Profile handles GET /api/user/profile. The username is never disclosed.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	user, err := h.dbclient.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(profileResponse{
		ID:                 user.ID,
		LanguagePreference: user.LanguagePreference,
		Locality:           user.Locality,
		StressLevel:        user.StressLevel,
		CreatedAt:          user.CreatedAt,
	})
}

type preferencesRequest struct {
	LanguagePreference string `json:"languagePreference"`
	Locality           string `json:"locality"`
}

// UpdatePreferences handles PUT /api/user/preferences.
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.LanguagePreference != models.LangEnglish && req.LanguagePreference != models.LangHindi {
		http.Error(w, "unsupported language preference", http.StatusBadRequest)
		return
	}
	if req.Locality != models.LocalityUrban && req.Locality != models.LocalityRural {
		http.Error(w, "unsupported locality", http.StatusBadRequest)
		return
	}

	user, err := h.dbclient.UpdateUserPreferences(r.Context(), userID, req.LanguagePreference, req.Locality)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(user)
}
