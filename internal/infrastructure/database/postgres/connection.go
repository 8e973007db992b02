// Package postgres manages the pooled connection to the ChEMBL-style
// PostgreSQL catalog and its schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

const (
	driverName      = "pgx"
	applicationName = "drug-interaction-dashboard"
	probeQuery      = "SELECT 1"
)

// sqlOpen is a variable to allow mocking in tests.
var sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// PostgresConfig holds the connection pool settings.
type PostgresConfig struct {
	Host             string
	Port             int
	Database         string
	Username         string
	Password         string
	SSLMode          string
	PoolSize         int
	MaxOverflow      int
	ConnMaxLifetime  time.Duration
	ConnMaxIdleTime  time.Duration
	StatementTimeout time.Duration
	ConnectTimeout   time.Duration
}

// FromConfig maps the application database section onto PostgresConfig.
func FromConfig(cfg config.DatabaseConfig) PostgresConfig {
	return PostgresConfig{
		Host:             cfg.Host,
		Port:             cfg.Port,
		Database:         cfg.Name,
		Username:         cfg.User,
		Password:         cfg.Password,
		SSLMode:          cfg.SSLMode,
		PoolSize:         cfg.PoolSize,
		MaxOverflow:      maxOverflow(cfg.MaxOverflow),
		ConnMaxLifetime:  cfg.ConnMaxLifetime,
		ConnMaxIdleTime:  cfg.ConnMaxIdleTime,
		StatementTimeout: cfg.StatementTimeout,
		ConnectTimeout:   cfg.ConnectTimeout,
	}
}

func maxOverflow(v *int) int {
	if v == nil {
		return config.DefaultDBMaxOverflow
	}
	return *v
}

// Connection manages the PostgreSQL database connection pool.
type Connection struct {
	db     *sql.DB
	cfg    PostgresConfig
	logger logging.Logger
	once   sync.Once
}

// NewConnection opens the pool, pings the server and runs a trivial probe
// query. Any failure is returned so startup can abort.
func NewConnection(cfg PostgresConfig, log logging.Logger) (*Connection, error) {
	db, err := sqlOpen(driverName, buildDSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to open database connection")
	}

	// PoolSize connections stay idle; MaxOverflow more may be opened under load.
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = config.DefaultDBPoolSize
	}
	overflow := cfg.MaxOverflow
	if overflow < 0 {
		overflow = 0
	}
	db.SetMaxIdleConns(poolSize)
	db.SetMaxOpenConns(poolSize + overflow)

	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(config.DefaultDBConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	} else {
		db.SetConnMaxIdleTime(config.DefaultDBConnMaxIdleTime)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = config.DefaultDBConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "database connection failed")
	}

	var one int
	if err := db.QueryRowContext(ctx, probeQuery).Scan(&one); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "database probe query failed")
	}

	log.Info("Connected to PostgreSQL database",
		logging.String("host", cfg.Host),
		logging.Int("port", cfg.Port),
		logging.String("database", cfg.Database),
		logging.Int("pool_size", poolSize),
		logging.Int("max_overflow", overflow),
	)

	return &Connection{
		db:     db,
		cfg:    cfg,
		logger: log,
	}, nil
}

// DB returns the underlying sql.DB instance.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// NewConnectionWithDB wraps an existing sql.DB (for testing).
func NewConnectionWithDB(db *sql.DB, log logging.Logger) *Connection {
	return &Connection{
		db:     db,
		logger: log,
	}
}

// HealthCheck pings the server and warns when the pool is nearly saturated.
func (c *Connection) HealthCheck(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "database health check failed")
	}

	stats := c.Stats()
	if stats.OpenConnections > 0 {
		usage := float64(stats.InUse) / float64(stats.OpenConnections)
		if usage > 0.8 {
			c.logger.Warn("High database connection pool usage",
				logging.Int("in_use", stats.InUse),
				logging.Int("open", stats.OpenConnections),
				logging.Float64("usage", usage),
			)
		}
	}

	return nil
}

// Name identifies the component in readiness reports.
func (c *Connection) Name() string { return "postgres" }

// Stats returns database statistics.
func (c *Connection) Stats() sql.DBStats {
	return c.db.Stats()
}

// Close closes the pool exactly once.
func (c *Connection) Close() error {
	var err error
	c.once.Do(func() {
		err = c.db.Close()
		if err == nil {
			c.logger.Info("Closed PostgreSQL database connection")
		} else {
			c.logger.Error("Failed to close PostgreSQL database connection", logging.Err(err))
		}
	})
	return err
}

// buildDSN constructs the PostgreSQL connection URL.
func buildDSN(cfg PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.Database,
	}

	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	} else {
		q.Set("sslmode", config.DefaultDBSSLMode)
	}

	stmt := cfg.StatementTimeout
	if stmt <= 0 {
		stmt = config.DefaultDBStatementTimeout
	}
	q.Set("statement_timeout", strconv.FormatInt(stmt.Milliseconds(), 10))

	if cfg.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
	}
	q.Set("application_name", applicationName)

	u.RawQuery = q.Encode()
	return u.String()
}

//Personal.AI order the ending
