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
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ChatEventTopic     string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider        string // "ollama" for now
	OllamaBaseURL   string
	DefaultModel    string // model label offered to clients when the request omits one
	DefaultLanguage string
	TimeoutSeconds  int // hard cap on a single answer call
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			ChatEventTopic:     getEnv("CHAT_EVENT_TOPIC_NAME", "CHAT_MESSAGE_SENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:        getEnv("ANSWER_PROVIDER", "ollama"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DefaultModel:    getEnv("ANSWER_DEFAULT_MODEL", "Mistral"),
			DefaultLanguage: getEnv("ANSWER_DEFAULT_LANGUAGE", "Auto-detect"),
			TimeoutSeconds:  getEnvAsInt("ANSWER_TIMEOUT_SECONDS", 120),
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
