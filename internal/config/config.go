package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// KafkaConfig is optional: with no brokers configured, booking events are
// simply not emitted.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPortStr := os.Getenv("POSTGRES_PORT")
	if postgresPortStr == "" {
		postgresPortStr = "5432"
	}

	postgresPort, err := strconv.Atoi(postgresPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	var kafkaBrokers []string
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				kafkaBrokers = append(kafkaBrokers, b)
			}
		}
	}

	kafkaTopic := os.Getenv("KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "staybook.bookings"
	}

	return &Config{
		Env: env,
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Postgres: PostgresConfig{
			User:     postgresUser,
			Password: postgresPassword,
			Name:     postgresDB,
			Host:     postgresHost,
			Port:     postgresPort,
			SSLMode:  postgresSSLMode,
		},
		Redis: RedisConfig{
			Addr:     redisAddr,
			Password: "",
			DB:       0,
		},
		Kafka: KafkaConfig{
			Brokers: kafkaBrokers,
			Topic:   kafkaTopic,
		},
	}, nil
}
