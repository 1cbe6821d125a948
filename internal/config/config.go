package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Assistant AssistantConfig
	Tuning    TuningConfig
	Store     StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins []string
	ExternalTimeout    time.Duration
	EnableKill         bool
	EnvFileLoaded      bool
}

type AssistantConfig struct {
	Provider     string // "watson" | "openai"
	APIKey       string
	URL          string
	AssistantID  string
	Version      string
	IAMURL       string
	OpenAIKey    string
	OpenAIModel  string
	CatalogPath  string
	TextStrategy string // "first" | "random"
}

type TuningConfig struct {
	MaxIntents   int
	FAQStripping bool
}

type StoreConfig struct {
	Backend     string // "cloudant" | "postgres" | "none"
	CloudantURL string
	CloudantKey string
	CloudantDB  string
	DatabaseURL string
}

const defaultIAMURL = "https://iam.cloud.ibm.com/identity/token"

func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", ""),
			CorsAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			ExternalTimeout:    time.Duration(getEnvAsInt("EXTERNAL_TIMEOUT_SECONDS", 10)) * time.Second,
			EnableKill:         getEnvAsBool("ENABLE_KILL", true),
			EnvFileLoaded:      loaded,
		},
		Assistant: AssistantConfig{
			Provider:     strings.ToLower(getEnv("ASSISTANT_PROVIDER", "watson")),
			APIKey:       getEnv("WA_API_KEY", "None"),
			URL:          getEnv("WA_URL", "None"),
			AssistantID:  getEnv("WA_ASSISTANT_ID", "None"),
			Version:      getEnv("WA_VERSION", "2021-11-27"),
			IAMURL:       getEnv("IAM_URL", defaultIAMURL),
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			CatalogPath:  getEnv("FAQ_CATALOG", "faq_catalog.yaml"),
			TextStrategy: strings.ToLower(getEnv("RESPONSE_TEXT_STRATEGY", "first")),
		},
		Tuning: TuningConfig{
			MaxIntents:   getEnvAsInt("MAX_INTENTS", 5),
			FAQStripping: getEnvAsBool("FAQ_STRIPPING", true),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("SELECTION_STORE", "cloudant")),
			CloudantURL: getEnv("CLOUDANT_URL", "None"),
			CloudantKey: getEnv("CLOUDANT_APIKEY", "None"),
			CloudantDB:  getEnv("CLOUDANT_DB", "SELECTION"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Summary lists the recognised options for the startup log, secrets masked.
func (c *Config) Summary() []string {
	return []string{
		"PORT = " + c.App.Port,
		"ASSISTANT_PROVIDER = " + c.Assistant.Provider,
		"WA_API_KEY = " + Mask(c.Assistant.APIKey),
		"WA_URL = " + c.Assistant.URL,
		"WA_ASSISTANT_ID = " + c.Assistant.AssistantID,
		"MAX_INTENTS = " + strconv.Itoa(c.Tuning.MaxIntents),
		"FAQ_STRIPPING = " + strconv.FormatBool(c.Tuning.FAQStripping),
		"RESPONSE_TEXT_STRATEGY = " + c.Assistant.TextStrategy,
		"SELECTION_STORE = " + c.Store.Backend,
		"CLOUDANT_URL = " + c.Store.CloudantURL,
		"CLOUDANT_APIKEY = " + Mask(c.Store.CloudantKey),
		"CLOUDANT_DB = " + c.Store.CloudantDB,
	}
}

// Mask keeps the last four characters of a secret.
func Mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strings.TrimSpace(strValue)); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(strValue)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
