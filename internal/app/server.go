package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mindsaathi/backend/internal/api/handlers"
	appMiddleware "github.com/mindsaathi/backend/internal/api/middlewares"
	"github.com/mindsaathi/backend/internal/config"
	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, dbclient db.DbClient, obj core.ObjectClient, generator core.TextGenerator, embedder core.EmbeddingProvider) *Server {
	chatService := services.NewChatService(dbclient, generator, cfg.ChatModel)
	journalService := services.NewJournalService(dbclient, generator, embedder, cfg.JournalModel)
	emotionService := services.NewEmotionService(dbclient, generator, cfg.EmotionModel)
	mediaService := services.NewMediaService(obj, cfg.BucketName)

	authHandler := handlers.NewAuthHandler(dbclient, cfg.JWTSecret)
	chatHandler := handlers.NewChatHandler(dbclient, chatService, emotionService, mediaService)
	journalHandler := handlers.NewJournalHandler(journalService)
	userHandler := handlers.NewUserHandler(dbclient)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "MindSaathi API Running"})
	})

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/auth/register", authHandler.Register)
		api.Post("/auth/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWT(cfg.JWTSecret))

			protected.Post("/chat/message", chatHandler.Message)
			protected.Get("/chat/history", chatHandler.History)
			protected.Post("/chat/analyze-image", chatHandler.AnalyzeImage)
			protected.Post("/chat/transcribe", chatHandler.Transcribe)

			protected.Post("/journal/generate", journalHandler.Generate)
			protected.Post("/journal/manual", journalHandler.Manual)
			protected.Get("/journal", journalHandler.List)
			protected.Get("/journal/search", journalHandler.Search)
			protected.Get("/journal/{date}", journalHandler.GetByDate)

			protected.Get("/user/profile", userHandler.Profile)
			protected.Put("/user/preferences", userHandler.UpdatePreferences)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
