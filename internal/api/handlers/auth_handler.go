package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/models"
)

type AuthHandler struct {
	dbclient  db.DbClient
	jwtSecret string
}

func NewAuthHandler(dbclient db.DbClient, jwtSecret string) *AuthHandler {
	return &AuthHandler{dbclient: dbclient, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	LanguagePreference string `json:"languagePreference"`
	Locality           string `json:"locality"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	existing, err := h.dbclient.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if req.LanguagePreference == "" {
		req.LanguagePreference = models.LangEnglish
	}
	if req.Locality == "" {
		req.Locality = models.LocalityUrban
	}

	now := time.Now()
	user := &models.User{
		ID:                 uuid.NewString(),
		Username:           req.Username,
		PasswordHash:       string(hash),
		LanguagePreference: req.LanguagePreference,
		Locality:           req.Locality,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.dbclient.CreateUser(r.Context(), user); err != nil {
		http.Error(w, "user exists", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(authResponse{Token: h.generateJWT(user.ID), User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user, err := h.dbclient.GetUserByUsername(r.Context(), req.Username)
	if err != nil || user == nil ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(authResponse{Token: h.generateJWT(user.ID), User: user})
}

// generateJWT creates a signed token with user ID claim
func (h *AuthHandler) generateJWT(userID string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, _ := tok.SignedString([]byte(h.jwtSecret))
	return token
}
