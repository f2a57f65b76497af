package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTP struct {
		Port string
	}
	DB struct {
		DSN string
	}
	Generation struct {
		BlockSize int
		DebugDir  string
	}
	Media struct {
		CacheDir string
	}
	Providers struct {
		DefaultProvider string
		OpenAIModel     string
		GeminiModel     string
		ClaudeModel     string
	}
}

func Load() Config {
	var cfg Config
	cfg.HTTP.Port = envOrDefault("PORT", "8080")
	cfg.DB.DSN = os.Getenv("POSTGRES_URL")
	cfg.Generation.BlockSize = envOrDefaultInt("GENERATION_BLOCK_SIZE", 3)
	cfg.Generation.DebugDir = envOrDefault("DEBUG_DIR", "debug")
	cfg.Media.CacheDir = envOrDefault("IMAGE_CACHE_DIR", "images")
	cfg.Providers.DefaultProvider = envOrDefault("AI_PROVIDER", "claude")
	cfg.Providers.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-4o")
	cfg.Providers.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-2.0-flash")
	cfg.Providers.ClaudeModel = envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514")
	return cfg
}

// CredentialSource resolves provider API keys. The env-backed implementation
// is the default; tests substitute a static map.
type CredentialSource interface {
	Get(provider string) string
}

type EnvCredentialSource struct{}

func (EnvCredentialSource) Get(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "claude", "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "unsplash":
		return os.Getenv("UNSPLASH_ACCESS_KEY")
	default:
		return ""
	}
}

type StaticCredentialSource map[string]string

func (s StaticCredentialSource) Get(provider string) string {
	return s[strings.ToLower(provider)]
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
