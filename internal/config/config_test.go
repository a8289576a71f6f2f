package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("POSTGRES_USER", "staybook")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "staybook")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q, want %q", cfg.Env, "local")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %s:%d, want localhost:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 || cfg.Postgres.SSLMode != "disable" {
		t.Errorf("Postgres = %+v, want localhost:5432 sslmode=disable", cfg.Postgres)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Errorf("Kafka.Brokers = %v, want none", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "staybook.bookings" {
		t.Errorf("Kafka.Topic = %q, want %q", cfg.Kafka.Topic, "staybook.bookings")
	}
}

func TestNew_MissingRequired(t *testing.T) {
	tests := []string{"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := New()
			if err == nil {
				t.Fatalf("New() succeeded with %s unset", key)
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("New() error %q does not name %s", err, key)
			}
		})
	}
}

func TestNew_InvalidPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := New(); err == nil {
		t.Fatal("New() succeeded with an invalid SERVER_PORT")
	}
}

func TestNew_KafkaBrokers(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	want := []string{"broker-1:9092", "broker-2:9092"}
	if len(cfg.Kafka.Brokers) != len(want) {
		t.Fatalf("Brokers = %v, want %v", cfg.Kafka.Brokers, want)
	}
	for i := range want {
		if cfg.Kafka.Brokers[i] != want[i] {
			t.Fatalf("Brokers = %v, want %v", cfg.Kafka.Brokers, want)
		}
	}
}
