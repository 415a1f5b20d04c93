package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	LLM        LLMConfig
	STT        STTConfig
	Transcribe TranscribeConfig
	Upload     UploadConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	RateLimitRPS   int // token-bucket refill per client IP
	RateLimitBurst int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string // empty disables bearer auth
}

type LLMConfig struct {
	GeminiKey       string
	OpenAIKey       string
	AnthropicKey    string
	DefaultProvider string
	DefaultModel    string
}

type STTConfig struct {
	Backend      string // "api" or "local"
	APIKey       string
	BaseURL      string // API backend; empty = api.openai.com
	Model        string
	LocalBaseURL string // default: "http://localhost:8178"
}

type TranscribeConfig struct {
	WindowSeconds int    // fixed transcription window, default 10
	Language      string // optional hint passed to the backend
}

type UploadConfig struct {
	MaxBytes int64 // reject uploads above this, default 200 MB
	Dir      string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	rateLimitRPS, err := getEnvInt("RATE_LIMIT_RPS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	rateLimitBurst, err := getEnvInt("RATE_LIMIT_BURST", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	windowSeconds, err := getEnvInt("TRANSCRIBE_WINDOW_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSCRIBE_WINDOW_SECONDS: %w", err)
	}
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("TRANSCRIBE_WINDOW_SECONDS must be positive")
	}

	maxUploadMB, err := getEnvInt("UPLOAD_MAX_MB", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		LLM: LLMConfig{
			GeminiKey:       getEnv("GEMINI_API_KEY", ""),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider: getEnv("LLM_DEFAULT_PROVIDER", "gemini"),
			DefaultModel:    getEnv("LLM_DEFAULT_MODEL", "gemini-2.5-flash"),
		},
		STT: STTConfig{
			Backend:      getEnv("STT_BACKEND", "api"),
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("STT_BASE_URL", ""),
			Model:        getEnv("STT_MODEL", "whisper-1"),
			LocalBaseURL: getEnv("STT_LOCAL_BASE_URL", "http://localhost:8178"),
		},
		Transcribe: TranscribeConfig{
			WindowSeconds: windowSeconds,
			Language:      getEnv("TRANSCRIBE_LANGUAGE", ""),
		},
		Upload: UploadConfig{
			MaxBytes: int64(maxUploadMB) << 20,
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.LLM.GeminiKey == "" && c.LLM.OpenAIKey == "" && c.LLM.AnthropicKey == "" {
		missing = append(missing, "GEMINI_API_KEY (or OPENAI_API_KEY / ANTHROPIC_API_KEY)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
