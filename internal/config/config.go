package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Stub StubConfig
}

// AppConfig drives the terminal client.
type AppConfig struct {
	ServiceURL            string
	Environment           string
	LogFilePath           string
	RequestTimeoutSeconds int // 0 = no timeout
}

// StubConfig drives the local stand-in of the document service.
type StubConfig struct {
	Port               string
	CorsAllowedOrigins string
	LogFilePath        string
	RedisURL           string // empty = in-memory chat history
	DataDir            string
	DriveFolder        string
	DriveLinkBase      string
	ChunkSize          int
	ChunkOverlap       int
	TopK               int
	MaxHistory         int
	OtelEnabled        bool
	OtelEndpoint       string
	LLMProvider        string // "none", "ollama", "openai", "groq" or "huggingface"
	LLMModel           string
	LLMBaseURL         string
	LLMAPIKey          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			ServiceURL:            strings.TrimRight(getEnv("DOCASSIST_SERVICE_URL", "http://localhost:8000"), "/"),
			Environment:           getEnv("GO_ENV", "development"),
			LogFilePath:           getEnv("LOG_FILE_PATH", "docassist.log"),
			RequestTimeoutSeconds: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 0),
		},
		Stub: StubConfig{
			Port:               getEnv("STUB_PORT", "8000"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			LogFilePath:        getEnv("STUB_LOG_FILE_PATH", "stubserver.log"),
			RedisURL:           getEnv("REDIS_URL", ""),
			DataDir:            getEnv("DATA_DIR", "data"),
			DriveFolder:        getEnv("DRIVE_FOLDER", "data/drive"),
			DriveLinkBase:      getEnv("DRIVE_LINK_BASE", ""),
			ChunkSize:          getEnvAsInt("CHUNK_SIZE", 900),
			ChunkOverlap:       getEnvAsInt("CHUNK_OVERLAP", 150),
			TopK:               getEnvAsInt("TOP_K", 4),
			MaxHistory:         getEnvAsInt("MAX_HISTORY", 6),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			LLMProvider:        getEnv("LLM_PROVIDER", "none"),
			LLMModel:           getEnv("LLM_MODEL", ""),
			LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:          getEnv("LLM_API_KEY", ""),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
