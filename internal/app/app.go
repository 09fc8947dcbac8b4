package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mindsaathi/backend/internal/config"
	"github.com/mindsaathi/backend/internal/core"
	db "github.com/mindsaathi/backend/internal/core/database"
	"github.com/mindsaathi/backend/internal/core/llm"
	objectclient "github.com/mindsaathi/backend/internal/core/object-client"
)

type App struct {
	DBClient db.DbClient
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	// The external clients are independent of each other; bring them up
	// concurrently. Object storage and the embedder are optional, the text
	// generator is only fatal when a provider was explicitly selected but
	// cannot start.
	var (
		objClient core.ObjectClient
		generator core.TextGenerator
		embedder  core.EmbeddingProvider
	)
	g, gctx := errgroup.WithContext(appCtx)

	g.Go(func() error {
		cl, err := objectclient.NewS3Client(gctx, cfg)
		if err != nil {
			log.Printf("WARN: object storage disabled: %v", err)
			return nil
		}
		objClient = cl
		return nil
	})

	g.Go(func() error {
		switch cfg.AIProvider {
		case "gemini":
			// The Gemini provider answers with its own configured model and
			// ignores the per-call model names.
			cl, err := llm.NewGeminiLLM(gctx, cfg.GeminiAPIKey, cfg.GenModel)
			if err != nil {
				return fmt.Errorf("init gemini provider: %w", err)
			}
			generator = cl
		default:
			cl, err := llm.NewGroqLLM(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ChatModel)
			if err != nil {
				log.Printf("WARN: text generation disabled: %v", err)
				return nil
			}
			generator = cl
		}
		return nil
	})

	g.Go(func() error {
		if cfg.GeminiAPIKey == "" {
			log.Println("WARN: journal search disabled: GEMINI_API_KEY not set")
			return nil
		}
		cl, err := llm.NewGeminiEmbedder(gctx, cfg.GeminiAPIKey, cfg.EmbedModel)
		if err != nil {
			log.Printf("WARN: journal search disabled: %v", err)
			return nil
		}
		embedder = cl
		return nil
	})

	if err := g.Wait(); err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	server := NewServer(cfg, dbClient, objClient, generator, embedder)

	return &App{DBClient: dbClient, Server: server}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
