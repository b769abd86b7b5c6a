package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Moderation holds the SLM classifier settings consumed by the moderation client.
type Moderation struct {
	BaseURL string
	APIKey  string
	Enabled bool
	Timeout time.Duration
}

type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	RedisAddr  string
	ServerAddr string
	JWTSecret  string
	Moderation Moderation
}

func LoadConfig() *Config {
	// .env is optional; real env vars win either way.
	godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "secret")
	v.SetDefault("DB_NAME", "civicboard")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("JWT_SECRET", "changeme")
	v.SetDefault("SLM_API_URL", "http://localhost:8000")
	v.SetDefault("SLM_API_KEY", "changeme")
	v.SetDefault("SLM_MODERATION_ENABLED", "")
	v.SetDefault("SLM_TIMEOUT_MS", 2000)

	return &Config{
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetInt("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASS"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
		RedisAddr:  v.GetString("REDIS_ADDR"),
		ServerAddr: v.GetString("PORT"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		Moderation: Moderation{
			BaseURL: v.GetString("SLM_API_URL"),
			APIKey:  v.GetString("SLM_API_KEY"),
			Enabled: ModerationEnabled(v.GetString("SLM_MODERATION_ENABLED")),
			Timeout: time.Duration(v.GetInt("SLM_TIMEOUT_MS")) * time.Millisecond,
		},
	}
}

// ModerationEnabled interprets the SLM_MODERATION_ENABLED switch. Moderation is on
// unless the value is the literal string "false", in any casing.
func ModerationEnabled(value string) bool {
	return !strings.EqualFold(strings.TrimSpace(value), "false")
}

// DSN assembles the PostgreSQL connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
