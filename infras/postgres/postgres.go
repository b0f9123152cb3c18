package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"seatq/config"
	"seatq/shared/constant"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var ErrUnavailable = errors.New("database connection unavailable")

// Connection splits reads from writes. Listings go to Read; commits and the
// reads that feed them go to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects both pools. With the in-process store driver no database is
// needed and an empty Connection is returned.
func New(config *config.Config) (*Connection, func(), error) {
	if config.Matching.StoreDriver == constant.StoreDriverMemory {
		return &Connection{}, func() {}, nil
	}

	write, err := connect("write", config.DB.Postgres.Write, config)
	if err != nil {
		return nil, nil, err
	}

	read, err := connect("read", config.DB.Postgres.Read, config)
	if err != nil {
		_ = write.Close()

		return nil, nil, err
	}

	conn := &Connection{Read: read, Write: write}

	return conn, conn.Close, nil
}

func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// Ping reports whether both pools can reach the database.
func (c *Connection) Ping(ctx context.Context) error {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	return nil
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != constant.Empty {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func connect(name string, target config.PostgresEndpoint, config *config.Config) (*sqlx.DB, error) {
	dbName := getDBName(config, target.Name)
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		target.Username,
		target.Password,
		net.JoinHostPort(target.Host, target.Port),
		dbName,
		target.SSLMode,
	)

	attempts := max(config.DB.Postgres.MaxRetry, 1)

	var err error

	for retry := range attempts {
		var sqlDB *sqlx.DB

		sqlDB, err = sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", target.Host).
				Str("port", target.Port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", target.Host).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to %s database after %d attempts: %w", name, attempts, err)
}
