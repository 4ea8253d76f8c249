package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/landlease/internal/dbx"
	"github.com/dmitrijs2005/landlease/internal/logging"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver string
	// DSN is the database/sql data source for the SQL drivers.
	DSN   string
	Redis RedisOptions
	// Logger receives migration output; nil discards it.
	Logger logging.Logger
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverRedis:
		return OpenRedis(ctx, opts.Redis)
	case "":
		return nil, fmt.Errorf("store driver is not set")
	default:
		dialect, err := dbx.ParseDialect(opts.Driver)
		if err != nil {
			return nil, err
		}
		return OpenSQL(ctx, dialect, opts.DSN, opts.Logger)
	}
}
