package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Diagnosis DiagnosisConfig
	CORS      CORSConfig
	Log       LogConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port                  string
	Env                   string
	ContentSecurityPolicy string
}

type GeminiConfig struct {
	APIKey      string
	APIKeyParam string
	Model       string
	Timeout     time.Duration
}

type DiagnosisConfig struct {
	Schema string
}

type CORSConfig struct {
	AllowOrigins string
	AllowMethods string
	AllowHeaders string
}

type LogConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Stdout bool
}

// Defaults are the per-entrypoint values used when the matching
// environment variable is unset.
type Defaults struct {
	Schema                string
	ContentSecurityPolicy string
}

// Load reads configuration from the process environment, after merging
// a local .env file when one is present.
func Load(defaults Defaults) *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	env := getEnv("ENV", "development")

	return &Config{
		Server: ServerConfig{
			Port:                  getEnv("PORT", "3001"),
			Env:                   env,
			ContentSecurityPolicy: getEnvAllowEmpty("CONTENT_SECURITY_POLICY", defaults.ContentSecurityPolicy),
		},
		Gemini: GeminiConfig{
			APIKey:      strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
			APIKeyParam: getEnv("GEMINI_API_KEY_PARAM", ""),
			Model:       getEnv("GEMINI_MODEL", ""),
			Timeout:     getEnvAsDuration("UPSTREAM_TIMEOUT", "60s"),
		},
		Diagnosis: DiagnosisConfig{
			Schema: getEnv("SCORE_SCHEMA", defaults.Schema),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
			AllowMethods: getEnv("CORS_ALLOW_METHODS", "POST, OPTIONS"),
			AllowHeaders: getEnv("CORS_ALLOW_HEADERS", "Content-Type"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: logFormat(env),
		},
		Tracing: TracingConfig{
			Stdout: getEnvAsBool("OTEL_TRACES_STDOUT", false),
		},
	}
}

func logFormat(env string) string {
	if env == "development" {
		return "console"
	}
	return "json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one explicitly set
// to the empty string, which disables the feature.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil && duration > 0 {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
