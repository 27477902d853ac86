// Package config loads service configuration from the environment. Every
// variable is prefixed with RESERVATIONS_, e.g. RESERVATIONS_DB_HOST.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string in the key=value form gorm expects.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// URL returns the connection string in URL form for the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// KafkaConfig holds event broker settings. An empty broker list disables
// event publishing.
type KafkaConfig struct {
	Brokers []string
}

// Enabled reports whether event publishing is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// ServiceConfig holds all configuration for the reservation service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MaxStayNights int
	DB            DatabaseConfig
	Kafka         KafkaConfig
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv != "production"
}

// Load reads configuration from environment variables with sane defaults
// for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RESERVATIONS")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MAX_STAY_NIGHTS", 30)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "reservations")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "")

	cfg := &ServiceConfig{
		Port:          v.GetString("SERVICE_PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		MaxStayNights: v.GetInt("MAX_STAY_NIGHTS"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}

	if brokers := v.GetString("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}

	if cfg.MaxStayNights <= 0 {
		return nil, fmt.Errorf("config: MAX_STAY_NIGHTS must be positive, got %d", cfg.MaxStayNights)
	}

	return cfg, nil
}
