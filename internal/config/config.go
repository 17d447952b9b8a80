package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	GitHubToken        string
	GitHubOrganization string
	RepoCacheTTL       time.Duration
	ReviewWriteLimit   int
	ReviewWriteWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("github.organization", "b4os-dev")
	v.SetDefault("repo.cache_ttl", "10m")
	v.SetDefault("review.write_limit", 30)
	v.SetDefault("review.write_window", "1m")

	repoTTL, err := time.ParseDuration(v.GetString("repo.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid repo cache ttl: %w", err)
	}

	writeWindow, err := time.ParseDuration(v.GetString("review.write_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid review write window: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		JWTSecret:          v.GetString("jwt.secret"),
		GitHubToken:        v.GetString("github.token"),
		GitHubOrganization: v.GetString("github.organization"),
		RepoCacheTTL:       repoTTL,
		ReviewWriteLimit:   v.GetInt("review.write_limit"),
		ReviewWriteWindow:  writeWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ReviewWriteLimit <= 0 {
		cfg.ReviewWriteLimit = 30
	}

	return cfg, nil
}
