package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	JWTSecret    string
	AIProvider   string
	GroqAPIKey   string
	GroqBaseURL  string
	ChatModel    string
	JournalModel string
	EmotionModel string
	GeminiAPIKey string
	GenModel     string
	EmbedModel   string
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	Port         string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		AIProvider:   getEnv("AI_PROVIDER", "groq"),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:    getEnv("GROQ_CHAT_MODEL", "mixtral-8x7b-32768"),
		JournalModel: getEnv("GROQ_JOURNAL_MODEL", "mixtral-8x7b-32768"),
		EmotionModel: getEnv("GROQ_EMOTION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GenModel:     getEnv("GEN_MODEL", "gemini-1.5-flash"),
		EmbedModel:   getEnv("EMBED_MODEL", "text-embedding-004"),
		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", "mindsaathi-media"),
		Port:         getEnv("PORT", "5000"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	if cfg.GroqAPIKey == "" && cfg.GeminiAPIKey == "" {
		log.Println("WARN: no AI API key configured; chat endpoints will report service unavailable")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
