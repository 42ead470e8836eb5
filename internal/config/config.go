package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SessionSecret      string
	SecureCookie       bool
	ChatDailyLimit     int
	ActivityTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	PerplexityAPIKey      string
	PerplexityBaseURL     string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OllamaBaseURL         string
	DefaultModel          string
	RequestTimeoutSeconds int
	PipelineTuningPath    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionSecret:      getEnv("SESSION_SECRET", "dev-secret-change-me"),
			SecureCookie:       getEnvAsBool("SECURE_COOKIE", false),
			ChatDailyLimit:     getEnvAsInt("CHAT_DAILY_LIMIT", 0),
			ActivityTopic:      getEnv("ACTIVITY_TOPIC_NAME", "USER_ACTIVITY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			PerplexityAPIKey:      getEnv("PERPLEXITY_API_KEY", ""),
			PerplexityBaseURL:     getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:         getEnv("OLLAMA_BASE_URL", ""),
			DefaultModel:          getEnv("DEFAULT_MODEL", "sonar-pro"),
			RequestTimeoutSeconds: getEnvAsInt("AI_REQUEST_TIMEOUT_SECONDS", 30),
			PipelineTuningPath:    getEnv("PIPELINE_TUNING_PATH", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
