// Package config defines the configuration structures of the drug interaction
// dashboard. No I/O or parsing logic lives here, only data types and
// validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters. User, Password,
// Host, Port and Name must all be supplied; the pool shape mirrors a
// "pool size plus overflow" allowance.
type DatabaseConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	SSLMode          string        `mapstructure:"ssl_mode"`
	PoolSize         int           `mapstructure:"pool_size"`
	MaxOverflow      *int          `mapstructure:"max_overflow"` // nil selects the default; 0 caps the pool at PoolSize
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime  time.Duration `mapstructure:"conn_max_idle_time"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	AutoMigrate      bool          `mapstructure:"auto_migrate"`
}

// CacheConfig selects and tunes the memoization store.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// RedisConfig holds Redis connection parameters. Only used when
// cache.backend is "redis".
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Neo4jConfig holds the optional graph sink connection.
type Neo4jConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
}

// MinIOConfig holds the optional artifact store for exported networks.
type MinIOConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
	RetentionDays   int           `mapstructure:"retention_days"`
}

// KafkaConfig holds the optional export event publisher. It only takes
// effect together with minio, since events announce stored exports.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	Acks         string        `mapstructure:"acks"`
	Compression  string        `mapstructure:"compression"`
	MaxRetries   int           `mapstructure:"max_retries"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// NetworkConfig tunes graph layout and rendering.
type NetworkConfig struct {
	// MergeLeaves merges a drug reached through several mechanisms into one
	// leaf node. Off by default.
	MergeLeaves     bool    `mapstructure:"merge_leaves"`
	LayoutUpdates   int     `mapstructure:"layout_updates"`
	Repulsion       float64 `mapstructure:"repulsion"`
	Rate            float64 `mapstructure:"rate"`
	Width           int     `mapstructure:"width"`
	Height          int     `mapstructure:"height"`
	LevelSeparation int     `mapstructure:"level_separation"`
	NodeSpacing     int     `mapstructure:"node_spacing"`
}

// RetryConfig configures the orchestration-level retry wrapper.
type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	Multiplier   float64       `mapstructure:"multiplier"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Database DatabaseConfig    `mapstructure:"database"`
	Cache    CacheConfig       `mapstructure:"cache"`
	Redis    RedisConfig       `mapstructure:"redis"`
	Neo4j    Neo4jConfig       `mapstructure:"neo4j"`
	MinIO    MinIOConfig       `mapstructure:"minio"`
	Kafka    KafkaConfig       `mapstructure:"kafka"`
	Network  NetworkConfig     `mapstructure:"network"`
	Retry    RetryConfig       `mapstructure:"retry"`
	Log      logging.LogConfig `mapstructure:"log"`
	Metrics  MetricsConfig     `mapstructure:"metrics"`
}

// MissingEnvError reports required connection parameters that were not
// supplied. Its message names the environment variables an operator sets.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "Missing required environment variables: " + strings.Join(e.Vars, ", ")
}

// requiredDatabaseVars lists the database parameters with the environment
// variable that supplies each, in reporting order.
func (c *Config) requiredDatabaseVars() []struct {
	name  string
	isSet bool
} {
	return []struct {
		name  string
		isSet bool
	}{
		{"DB_USER", c.Database.User != ""},
		{"DB_PASSWORD", c.Database.Password != ""},
		{"DB_HOST", c.Database.Host != ""},
		{"DB_PORT", c.Database.Port != 0},
		{"DB_NAME", c.Database.Name != ""},
	}
}

// CheckRequired returns a *MissingEnvError when any database parameter is
// absent.
func (c *Config) CheckRequired() error {
	var missing []string
	for _, v := range c.requiredDatabaseVars() {
		if !v.isSet {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}
	return nil
}

// Validate performs semantic validation of the fully-populated Config.
// Callers treat any error as fatal and refuse to start.
func (c *Config) Validate() error {
	if err := c.CheckRequired(); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.PoolSize < 1 {
		return fmt.Errorf("config: database.pool_size must be >= 1, got %d", c.Database.PoolSize)
	}
	if c.Database.MaxOverflow != nil && *c.Database.MaxOverflow < 0 {
		return fmt.Errorf("config: database.max_overflow must be >= 0, got %d", *c.Database.MaxOverflow)
	}

	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("config: cache.backend %q is invalid; expected memory|redis", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive, got %s", c.Cache.TTL)
	}

	if c.Neo4j.Enabled && c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required when neo4j is enabled")
	}
	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when minio is enabled")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.bucket is required when minio is enabled")
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers is required when kafka is enabled")
		}
		switch c.Kafka.Acks {
		case "none", "one", "all":
		default:
			return fmt.Errorf("config: kafka.acks %q is invalid; expected none|one|all", c.Kafka.Acks)
		}
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("config: retry.max_attempts must be >= 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("config: retry.multiplier must be >= 1, got %g", c.Retry.Multiplier)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
