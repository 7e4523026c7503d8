// Package config loads service settings from a .env file, an optional YAML
// file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverDynamoDB = "dynamodb"
	DriverMongo    = "mongo"
)

type Config struct {
	// Server
	ListenAddr  string `yaml:"listen_addr"`
	MetricsPath string `yaml:"metrics_path"`
	LogLevel    string `yaml:"log_level"`

	// Storage
	StoreDriver   string        `yaml:"store_driver"`
	StoreTimeout  time.Duration `yaml:"store_timeout"`
	DBPath        string        `yaml:"db_path"`
	DatabaseURL   string        `yaml:"database_url"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPrefix   string        `yaml:"redis_prefix"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`
	DynamoTable   string        `yaml:"dynamodb_table"`
	MongoURI      string        `yaml:"mongo_uri"`
	MongoDatabase string        `yaml:"mongo_database"`

	// Sessions
	DistributedLock bool          `yaml:"distributed_lock"`
	SessionIdleTTL  time.Duration `yaml:"session_idle_ttl"`

	// Bridge authentication
	BridgeSecret   string        `yaml:"bridge_secret"`
	BridgeTokenTTL time.Duration `yaml:"bridge_token_ttl"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() *Config {
	return &Config{
		ListenAddr:     ":8080",
		MetricsPath:    "/metrics",
		LogLevel:       "info",
		StoreDriver:    DriverSQLite,
		StoreTimeout:   5 * time.Second,
		DBPath:         "./data/ledger.db",
		RedisAddr:      "localhost:6379",
		RedisPrefix:    "krispyledger:",
		MongoDatabase:  "krispyledger",
		SessionIdleTTL: 30 * time.Minute,
		BridgeTokenTTL: 24 * time.Hour,
	}
}

// Load reads .env (if present), then the YAML file named by KRISPY_CONFIG
// (if set), then environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("KRISPY_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ListenAddr = getEnvDefault("LISTEN_ADDR", c.ListenAddr)
	c.MetricsPath = getEnvDefault("METRICS_PATH", c.MetricsPath)
	c.LogLevel = getEnvDefault("LOG_LEVEL", c.LogLevel)
	c.StoreDriver = getEnvDefault("STORE_DRIVER", c.StoreDriver)
	c.DBPath = getEnvDefault("DB_PATH", c.DBPath)
	c.DatabaseURL = getEnvDefault("DATABASE_URL", c.DatabaseURL)
	c.RedisAddr = getEnvDefault("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnvDefault("REDIS_PASSWORD", c.RedisPassword)
	c.RedisPrefix = getEnvDefault("REDIS_PREFIX", c.RedisPrefix)
	c.DynamoTable = getEnvDefault("DYNAMODB_TABLE", c.DynamoTable)
	c.MongoURI = getEnvDefault("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnvDefault("MONGO_DATABASE", c.MongoDatabase)
	c.BridgeSecret = getEnvDefault("BRIDGE_SECRET", c.BridgeSecret)

	var err error
	if c.RedisDB, err = getEnvInt("REDIS_DB", c.RedisDB); err != nil {
		return err
	}
	if c.DistributedLock, err = getEnvBool("DISTRIBUTED_LOCK", c.DistributedLock); err != nil {
		return err
	}
	if c.StoreTimeout, err = getEnvDuration("STORE_TIMEOUT", c.StoreTimeout); err != nil {
		return err
	}
	if c.RedisTTL, err = getEnvDuration("REDIS_TTL", c.RedisTTL); err != nil {
		return err
	}
	if c.SessionIdleTTL, err = getEnvDuration("SESSION_IDLE_TTL", c.SessionIdleTTL); err != nil {
		return err
	}
	if c.BridgeTokenTTL, err = getEnvDuration("BRIDGE_TOKEN_TTL", c.BridgeTokenTTL); err != nil {
		return err
	}
	return nil
}

// Validate reports settings the selected store driver needs but lacks.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case DriverDynamoDB:
		if c.DynamoTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb store")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RedisTTL < 0 {
		return fmt.Errorf("REDIS_TTL must not be negative")
	}
	if c.DistributedLock && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for DISTRIBUTED_LOCK")
	}
	return nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
