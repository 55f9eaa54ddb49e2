package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIBaseURL string
	APITimeout time.Duration

	SQLitePath string
	RedisAddr  string

	UseKafka      bool
	KafkaBrokers  []string
	KafkaTopic    string
	RelayBuffer   int
	RelayRetries  int
	RelayInterval time.Duration

	CacheTTL      time.Duration
	DebounceBusca time.Duration

	HTTPPort string
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	getEnvBool := func(key string, fallback bool) bool {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000/api"),
		APITimeout: 15 * time.Second,

		SQLitePath: getEnv("SQLITE_PATH", "./processos_console.db"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),

		UseKafka:      getEnvBool("USE_KAFKA", false),
		KafkaBrokers:  kafkaBrokers,
		KafkaTopic:    getEnv("KAFKA_TOPIC", "processo-events"),
		RelayBuffer:   64,
		RelayRetries:  3,
		RelayInterval: 2 * time.Second,

		CacheTTL:      5 * time.Minute,
		DebounceBusca: 500 * time.Millisecond,

		HTTPPort: getEnv("HTTP_PORT", "8080"),
	}
}
