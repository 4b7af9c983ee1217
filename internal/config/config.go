package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backend names accepted in STORE.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	Store       string
	DatabaseURL string
	SQLitePath  string

	KafkaBrokers []string
	KafkaTopic   string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	ESIndex     string

	AdminJWTSecret []byte
}

// Load reads the environment, applying .env first so local runs need no
// exports. When STORE is unset it picks postgres if DATABASE_URL is present
// and sqlite otherwise.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "produto-api"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		Store:       strings.ToLower(os.Getenv("STORE")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "produtos.db"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "product_events"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
		ESIndex:     EnvDefault("ES_INDEX", "product"),

		AdminJWTSecret: []byte(os.Getenv("ADMIN_JWT_SECRET")),
	}

	if config.Store == "" {
		if config.DatabaseURL != "" {
			config.Store = StorePostgres
		} else {
			config.Store = StoreSQLite
		}
	}

	switch config.Store {
	case StorePostgres:
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE=postgres requires DATABASE_URL")
		}
	case StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE value %q", config.Store)
	}

	return config, nil
}

// EnvDefault returns the variable value or def when unset or blank.
func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvIntDefault returns the variable parsed as int, or def when the
// variable is unset, blank or not a number.
func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Notice: %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

// CSV splits a comma separated list, trimming spaces and dropping empty
// items. An empty input yields nil.
func CSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
