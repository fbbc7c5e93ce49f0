// Package config centralises configuration parsing for the activities service.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the activities service.
type Config struct {
	HTTPAddress     string
	MetricsAddress  string
	MongoURL        string
	MongoDatabase   string
	StaticDir       string
	KafkaBrokers    []string // empty disables enrollment event publishing
	EnrollmentTopic string
	AuditGroupID    string
	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying sensible defaults for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:  getEnv("METRICS_ADDRESS", ":9091"),
		MongoURL:        getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "school_activities"),
		StaticDir:       getEnv("STATIC_DIR", "static"),
		EnrollmentTopic: getEnv("ENROLLMENT_TOPIC", "enrollment_events"),
		AuditGroupID:    getEnv("AUDIT_GROUP_ID", "activities-auditor"),
		ConnectTimeout:  getDurationEnv("CONNECT_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
