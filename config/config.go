// Package config reads the process configuration from the environment,
// loading a .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	GinMode     string
	CORSOrigins []string

	JWTSecret   string
	TokenTTL    time.Duration
	RememberTTL time.Duration

	RedisAddr     string
	RedisPassword string

	KafkaBrokers    []string
	KafkaOrderTopic string
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            orDefault(getenv("PORT"), "8080"),
		GinMode:         getenv("GIN_MODE"),
		CORSOrigins:     splitList(orDefault(getenv("CORS_ORIGINS"), "*")),
		JWTSecret:       getenv("JWT_SECRET"),
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		KafkaBrokers:    splitList(getenv("KAFKA_BROKERS")),
		KafkaOrderTopic: orDefault(getenv("KAFKA_ORDER_TOPIC"), "orders.created"),
	}

	cfg.DatabaseDSN = getenv("DATABASE_URL")
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST"), getenv("DB_USER"), getenv("DB_PASSWORD"), getenv("DB_NAME"), orDefault(getenv("DB_PORT"), "5432"),
		)
	}

	var err error
	if cfg.TokenTTL, err = duration(getenv, "TOKEN_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RememberTTL, err = duration(getenv, "REMEMBER_TTL", 5*365*24*time.Hour); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
