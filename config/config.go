package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Conversation settings.
	SessionTTLMinutes int     `mapstructure:"SESSION_TTL_MINUTES"`
	MaxInterrupts     int     `mapstructure:"MAX_INTERRUPTS"`
	IntentThreshold   float64 `mapstructure:"INTENT_THRESHOLD"`

	// External NLU (Gemini) fallback.
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string `mapstructure:"GEMINI_MODEL"`
	NLUTimeoutSeconds int    `mapstructure:"NLU_TIMEOUT_SECONDS"`

	// External collaborators.
	SearchServiceURL string  `mapstructure:"SEARCH_SERVICE_URL"`
	SearchThreshold  float64 `mapstructure:"SEARCH_THRESHOLD"`
	NotifyRelayURL   string  `mapstructure:"NOTIFY_RELAY_URL"`

	// Business/catalog configuration file (brand.yaml).
	BusinessConfigPath string `mapstructure:"BUSINESS_CONFIG_PATH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("MAX_INTERRUPTS", 3)
	viper.SetDefault("INTENT_THRESHOLD", 0.55)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("NLU_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SEARCH_SERVICE_URL", "")
	viper.SetDefault("SEARCH_THRESHOLD", 0.72)
	viper.SetDefault("NOTIFY_RELAY_URL", "")
	viper.SetDefault("BUSINESS_CONFIG_PATH", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
