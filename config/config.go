package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Ledger   LedgerConfig
	Log      LogConfig
	Database DatabaseConfig
	PubSub   PubSubConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
}

type LedgerConfig struct {
	// Accounts are opened with a zero balance at startup.
	Accounts []uint64
	NodeID   int64
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	URL string
}

type PubSubConfig struct {
	ProjectID    string
	Endpoint     string
	Subscription string
	Topic        string
	MaxMessages  int32
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

type RedisConfig struct {
	RedisAddr string
	Password  string
	DB        int
}

// LoadConfig reads the environment, after loading .env when present.
// An empty endpoint disables the matching integration.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	accounts, err := parseAccounts(getEnv("LEDGER_ACCOUNTS", "1,2"))
	if err != nil {
		return nil, err
	}
	nodeID, err := strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NODE_ID: %w", err)
	}
	maxMessages, err := strconv.ParseInt(getEnv("PUBSUB_MAX_MESSAGES", "10"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid PUBSUB_MAX_MESSAGES: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Ledger: LedgerConfig{
			Accounts: accounts,
			NodeID:   nodeID,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:    getEnv("PROJECT_ID", "demo-project"),
			Endpoint:     getEnv("PUBSUB_ENDPOINT", "localhost:8085"),
			Subscription: getEnv("PUBSUB_SUBSCRIPTION", "sub-ledger-requests"),
			Topic:        getEnv("PUBSUB_TOPIC", "ledger-requests"),
			MaxMessages:  int32(maxMessages),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
			Topic:  getEnv("KAFKA_TOPIC", "ledger-events"),
		},
		Redis: RedisConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        redisDB,
		},
	}

	return cfg, nil
}

func parseAccounts(raw string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LEDGER_ACCOUNTS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
