package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DefaultSuccessThresholdPercent is the share of active employees that must end a
	// batch run with a snapshot for the run to be reported as successful.
	DefaultSuccessThresholdPercent = 50
	DefaultBatchWorkers            = 4
	DefaultLockTTL                 = 2 * time.Minute
	DefaultOutboxPollInterval      = 3 * time.Second
)

type Config struct {
	Port    string
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Payroll PayrollConfig
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker             string
	OutboxPollInterval time.Duration
}

type PayrollConfig struct {
	BatchWorkers            int
	SuccessThresholdPercent int
	LockTTL                 time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using environment variables")
	}

	workers, err := getEnvInt("PAYROLL_BATCH_WORKERS", DefaultBatchWorkers)
	if err != nil {
		return Config{}, err
	}
	threshold, err := getEnvInt("PAYROLL_BATCH_SUCCESS_PERCENT", DefaultSuccessThresholdPercent)
	if err != nil {
		return Config{}, err
	}
	lockTTL, err := getEnvDuration("PAYROLL_LOCK_TTL", DefaultLockTTL)
	if err != nil {
		return Config{}, err
	}
	pollInterval, err := getEnvDuration("OUTBOX_POLL_INTERVAL", DefaultOutboxPollInterval)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getEnv("PORT", "3000"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "payroll"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Kafka: KafkaConfig{
			Broker:             os.Getenv("KAFKA_BROKER"),
			OutboxPollInterval: pollInterval,
		},
		Payroll: PayrollConfig{
			BatchWorkers:            workers,
			SuccessThresholdPercent: threshold,
			LockTTL:                 lockTTL,
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Payroll.BatchWorkers < 1 {
		return fmt.Errorf("config: PAYROLL_BATCH_WORKERS must be at least 1")
	}
	if c.Payroll.SuccessThresholdPercent < 1 || c.Payroll.SuccessThresholdPercent > 100 {
		return fmt.Errorf("config: PAYROLL_BATCH_SUCCESS_PERCENT must be between 1 and 100")
	}
	if c.Payroll.LockTTL <= 0 {
		return fmt.Errorf("config: PAYROLL_LOCK_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}
