package config

import "time"

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8050
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerIdleTimeout     = 60 * time.Second
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultSlowThreshold         = 2 * time.Second

	DefaultDBSSLMode          = "disable"
	DefaultDBPoolSize         = 5
	DefaultDBMaxOverflow      = 10
	DefaultDBConnMaxLifetime  = 30 * time.Minute
	DefaultDBConnMaxIdleTime  = 5 * time.Minute
	DefaultDBStatementTimeout = 30 * time.Second
	DefaultDBConnectTimeout   = 5 * time.Second

	DefaultCacheBackend       = "memory"
	DefaultCacheTTL           = time.Hour
	DefaultCacheSweepInterval = 10 * time.Minute

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisKeyPrefix = "drugdash:"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jDatabase = "neo4j"
	DefaultNeo4jPoolSize = 20

	DefaultMinIOEndpoint      = "localhost:9000"
	DefaultMinIORegion        = "us-east-1"
	DefaultMinIOBucket        = "drugdash-networks"
	DefaultMinIOPresignExpiry = time.Hour
	DefaultMinIORetentionDays = 30

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaTopic        = "drugdash.network.exported"
	DefaultKafkaClientID     = "drugdash"
	DefaultKafkaAcks         = "one"
	DefaultKafkaMaxRetries   = 3
	DefaultKafkaWriteTimeout = 10 * time.Second

	DefaultNetworkLayoutUpdates   = 300
	DefaultNetworkRepulsion       = 1.0
	DefaultNetworkRate            = 0.05
	DefaultNetworkWidth           = 1200
	DefaultNetworkHeight          = 800
	DefaultNetworkLevelSeparation = 150
	DefaultNetworkNodeSpacing     = 150

	DefaultRetryMaxAttempts  = 3
	DefaultRetryInitialDelay = time.Second
	DefaultRetryMaxDelay     = 10 * time.Second
	DefaultRetryMultiplier   = 2.0

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "drugdash"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Explicitly configured values are left unchanged. The required database
// parameters (user, password, host, port, name) never receive defaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// Server
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultServerIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.SlowThreshold == 0 {
		cfg.Server.SlowThreshold = DefaultSlowThreshold
	}

	// Database
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDBSSLMode
	}
	if cfg.Database.PoolSize == 0 {
		cfg.Database.PoolSize = DefaultDBPoolSize
	}
	if cfg.Database.MaxOverflow == nil {
		overflow := DefaultDBMaxOverflow
		cfg.Database.MaxOverflow = &overflow
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = DefaultDBConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = DefaultDBConnMaxIdleTime
	}
	if cfg.Database.StatementTimeout == 0 {
		cfg.Database.StatementTimeout = DefaultDBStatementTimeout
	}
	if cfg.Database.ConnectTimeout == 0 {
		cfg.Database.ConnectTimeout = DefaultDBConnectTimeout
	}

	// Cache
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.SweepInterval == 0 {
		cfg.Cache.SweepInterval = DefaultCacheSweepInterval
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// Neo4j
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}
	if cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = DefaultNeo4jPoolSize
	}

	// MinIO
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = DefaultMinIORegion
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = DefaultMinIOPresignExpiry
	}
	if cfg.MinIO.RetentionDays == 0 {
		cfg.MinIO.RetentionDays = DefaultMinIORetentionDays
	}

	// Kafka
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.ClientID == "" {
		cfg.Kafka.ClientID = DefaultKafkaClientID
	}
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = DefaultKafkaAcks
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = DefaultKafkaMaxRetries
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	// Network
	if cfg.Network.LayoutUpdates == 0 {
		cfg.Network.LayoutUpdates = DefaultNetworkLayoutUpdates
	}
	if cfg.Network.Repulsion == 0 {
		cfg.Network.Repulsion = DefaultNetworkRepulsion
	}
	if cfg.Network.Rate == 0 {
		cfg.Network.Rate = DefaultNetworkRate
	}
	if cfg.Network.Width == 0 {
		cfg.Network.Width = DefaultNetworkWidth
	}
	if cfg.Network.Height == 0 {
		cfg.Network.Height = DefaultNetworkHeight
	}
	if cfg.Network.LevelSeparation == 0 {
		cfg.Network.LevelSeparation = DefaultNetworkLevelSeparation
	}
	if cfg.Network.NodeSpacing == 0 {
		cfg.Network.NodeSpacing = DefaultNetworkNodeSpacing
	}

	// Retry
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultRetryMaxAttempts
	}
	if cfg.Retry.InitialDelay == 0 {
		cfg.Retry.InitialDelay = DefaultRetryInitialDelay
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = DefaultRetryMaxDelay
	}
	if cfg.Retry.Multiplier == 0 {
		cfg.Retry.Multiplier = DefaultRetryMultiplier
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// Metrics
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

//Personal.AI order the ending
