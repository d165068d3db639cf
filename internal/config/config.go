package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Paths    PathConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadLimitMB      int
}

type DatabaseConfig struct {
	Connection string
}

type PathConfig struct {
	DocsDir string // the "study desk" folder scanned by the open-file command
	DataDir string // bookmark JSON files
}

type APIKeys struct {
	Groq                 string
	DocumentChangedTopic string
}

type AIConfig struct {
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string
	OllamaBaseURL     string
	EmbeddingProvider string // "tfidf" or "ollama"
	EmbeddingModel    string
	VectorBackend     string // "memory" or "pgvector"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadLimitMB:      getEnvAsInt("UPLOAD_LIMIT_MB", 10),
		},
		Database: DatabaseConfig{
			Connection: getEnv("PG_CONNECTION_STRING", ""),
		},
		Paths: PathConfig{
			DocsDir: getEnv("DOCS_DIR", "VoiceRead_Docs"),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Keys: APIKeys{
			Groq:                 getEnv("GROQ_API_KEY", ""),
			DocumentChangedTopic: getEnv("DOCUMENT_CHANGED_TOPIC_NAME", "DOCUMENT_CHANGED"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "tfidf"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			VectorBackend:     getEnv("VECTOR_BACKEND", "memory"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
