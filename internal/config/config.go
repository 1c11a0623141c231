/**
 * @description
 * This package handles configuration management for the checkout portal. It
 * uses the Viper library to read configuration from environment variables
 * (with an optional .env file), providing a centralized way to manage
 * application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the checkout portal.
// These values are loaded from environment variables.
type Config struct {
	ServerPort            string `mapstructure:"SERVER_PORT"`
	FirewallAPIBaseURL    string `mapstructure:"FIREWALL_API_BASE_URL"`
	CatalogAPIBaseURL     string `mapstructure:"CATALOG_API_BASE_URL"`
	AgentAPIBaseURL       string `mapstructure:"AGENT_API_BASE_URL"`
	HTTPTimeoutSeconds    int    `mapstructure:"HTTP_CLIENT_TIMEOUT_SECONDS"`
	AgentTimeoutSeconds   int    `mapstructure:"AGENT_TIMEOUT_SECONDS"`
	RabbitMQURL           string `mapstructure:"RABBITMQ_URL"`
	DecisionEventExchange string `mapstructure:"DECISION_EVENT_EXCHANGE"`
}

// LoadConfig reads configuration from environment variables from the given
// path. It uses Viper to bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The recurring-firewall backend serves both the catalog and the
	// decision endpoint on port 8000 by default; the agent rides alongside.
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("FIREWALL_API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("CATALOG_API_BASE_URL", "")
	viper.SetDefault("AGENT_API_BASE_URL", "")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT_SECONDS", 30)
	viper.SetDefault("AGENT_TIMEOUT_SECONDS", 120)
	viper.SetDefault("DECISION_EVENT_EXCHANGE", "checkout_events")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("FIREWALL_API_BASE_URL")
	_ = viper.BindEnv("CATALOG_API_BASE_URL")
	_ = viper.BindEnv("AGENT_API_BASE_URL")
	_ = viper.BindEnv("HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = viper.BindEnv("AGENT_TIMEOUT_SECONDS")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("DECISION_EVENT_EXCHANGE")

	if err = viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; anything else is worth a warning.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if port := strings.TrimSpace(viper.GetString("PORT")); port != "" {
		config.ServerPort = port
	}

	// Catalog and agent default to the firewall host when not set separately.
	config.FirewallAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.FirewallAPIBaseURL), "/")
	config.CatalogAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.CatalogAPIBaseURL), "/")
	config.AgentAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.AgentAPIBaseURL), "/")
	if config.CatalogAPIBaseURL == "" {
		config.CatalogAPIBaseURL = config.FirewallAPIBaseURL
	}
	if config.AgentAPIBaseURL == "" {
		config.AgentAPIBaseURL = config.FirewallAPIBaseURL
	}

	if config.HTTPTimeoutSeconds <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive http timeout configured; using default\" timeout_seconds=%d", config.HTTPTimeoutSeconds)
		config.HTTPTimeoutSeconds = 30
	}
	if config.AgentTimeoutSeconds <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive agent timeout configured; using default\" timeout_seconds=%d", config.AgentTimeoutSeconds)
		config.AgentTimeoutSeconds = 120
	}
	if strings.TrimSpace(config.DecisionEventExchange) == "" {
		config.DecisionEventExchange = "checkout_events"
	}

	return
}
