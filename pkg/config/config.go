package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Database holds connection settings for the PostgreSQL store.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Config carries every setting the services need. It is populated once at
// startup and handed to constructors explicitly; no component reads viper
// on its own after this.
type Config struct {
	ServerPort string

	Database Database

	// Marketplace data provider (Rainforest-style API).
	RainforestAPIKey  string
	AmazonMarketplace string

	// Text-generation providers, both optional.
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Analytics event ingestion, optional. Empty brokers disables the consumer.
	KafkaBrokers        []string
	KafkaAnalyticsTopic string
}

// Load initializes configuration from environment variables and .env file.
func Load() (Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "amazon_analytics")
	viper.SetDefault("AMAZON_MARKETPLACE", "US")
	viper.SetDefault("KAFKA_ANALYTICS_TOPIC", "ANALYTICS_EVENTS")

	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Warn("Failed to read .env file, using environment variables")
	}

	cfg := Config{
		ServerPort: viper.GetString("SERVER_PORT"),
		Database: Database{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		RainforestAPIKey:    SanitizeKey(viper.GetString("RAINFOREST_API_KEY")),
		AmazonMarketplace:   viper.GetString("AMAZON_MARKETPLACE"),
		OpenAIAPIKey:        SanitizeKey(viper.GetString("OPENAI_API_KEY")),
		AnthropicAPIKey:     SanitizeKey(viper.GetString("ANTHROPIC_API_KEY")),
		KafkaAnalyticsTopic: viper.GetString("KAFKA_ANALYTICS_TOPIC"),
	}
	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// SanitizeKey treats empty, whitespace-only and placeholder values
// (like "your_api_key_here" from a template .env) as unset.
func SanitizeKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || strings.HasPrefix(trimmed, "your_") {
		return ""
	}
	return trimmed
}
