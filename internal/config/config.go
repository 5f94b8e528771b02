package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the agent. It is built once at process
// start and passed explicitly into every component that needs it.
type Config struct {
	// OpenAI-compatible generation API
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	ImageModel    string

	// bioRxiv source API
	BiorxivBaseURL string
	BiorxivServer  string
	MaxPages       int

	// log-file persistence
	NotificationLog string
	SummaryLog      string
	ImageDir        string

	// Bluesky
	BlueskyHandle   string
	BlueskyPassword string
	PostDelay       time.Duration

	// Temporal
	TemporalHostPort  string
	TemporalNamespace string
	TaskQueue         string
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ImageModel:    getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),

		BiorxivBaseURL: getEnv("BIORXIV_BASE_URL", "https://api.biorxiv.org"),
		BiorxivServer:  getEnv("BIORXIV_SERVER", "biorxiv"),
		MaxPages:       getEnvInt("BIORXIV_MAX_PAGES", 200),

		NotificationLog: getEnv("NOTIFICATION_LOG", "paper_notifications.log"),
		SummaryLog:      getEnv("SUMMARY_LOG", "summary_output.log"),
		ImageDir:        getEnv("IMAGE_DIR", "paper_images"),

		BlueskyHandle:   os.Getenv("BLUESKY_HANDLE"),
		BlueskyPassword: os.Getenv("BLUESKY_PASSWORD"),
		PostDelay:       time.Duration(getEnvInt("POST_DELAY_SECONDS", 60)) * time.Second,

		TemporalHostPort:  getEnv("TEMPORAL_HOST_PORT", "localhost:7233"),
		TemporalNamespace: getEnv("TEMPORAL_NAMESPACE", "default"),
		TaskQueue:         getEnv("TEMPORAL_TASK_QUEUE", "biorxiv-agent"),
	}
}

// RequireOpenAI reports a configuration error unless the generation API key
// is set. Called before any network activity so missing credentials fail
// fast.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}

// RequireBluesky reports a configuration error unless the Bluesky
// credentials are set.
func (c *Config) RequireBluesky() error {
	if c.BlueskyHandle == "" || c.BlueskyPassword == "" {
		return fmt.Errorf("BLUESKY_HANDLE and BLUESKY_PASSWORD environment variables are required")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid value for %s: %q, using default %d", key, value, defaultValue)
	}
	return defaultValue
}
