package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Sentiment SentimentConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

// DatabaseConfig supports either a full DSN (DB_CONNECTION_STRING) or the
// structured DB_HOST/DB_PORT/... form; the DSN wins when both are set.
type DatabaseConfig struct {
	Connection string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	SupportEmail string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string
	OllamaBaseURL  string
	HuggingFaceKey string
	HuggingFaceURL string
}

// SentimentConfig carries env overrides for the escalation thresholds.
// Values are in the 0..1 range; defaults match sentiment.DefaultConfig.
type SentimentConfig struct {
	EscalateAnger       float64
	EscalateFrustration float64
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "swift_assist"),
			SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "SwiftAssist"),
			SupportEmail: getEnv("SUPPORT_DESK_EMAIL", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
			HuggingFaceURL: getEnv("HUGGINGFACE_BASE_URL", ""),
		},
		Sentiment: SentimentConfig{
			EscalateAnger:       getEnvAsFloat("ESCALATE_ANGER_THRESHOLD", 0.7),
			EscalateFrustration: getEnvAsFloat("ESCALATE_FRUSTRATION_THRESHOLD", 0.8),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
