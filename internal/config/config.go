package config

import (
	"os"
	"strings"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	// AllowedEmailDomains is the registration allowlist (e.g. "gmail.com").
	AllowedEmailDomains []string

	// GeminiAPIKeys is the upstream credential pool; one key is picked at
	// random per request.
	GeminiAPIKeys []string
	GeminiModel   string
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "chitchat"),
		DBPassword: getEnv("DB_PASSWORD", "chitchat_dev_password"),
		DBName:     getEnv("DB_NAME", "chitchat"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),

		AllowedEmailDomains: splitList(getEnv("ALLOWED_EMAIL_DOMAINS", "gmail.com")),

		GeminiAPIKeys: splitList(getEnv("GEMINI_API_KEYS", "")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
