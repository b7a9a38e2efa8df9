// internal/store/open.go
//
// Backend selection from configuration.

package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // memory | sql | redis
	Driver  string // sqlite3 | sqlite | postgres
	DSN     string
	Redis   RedisOptions
}

// Open returns the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sql":
		driver := opts.Driver
		if driver == "" {
			driver = DriverSQLite3
		}
		return OpenSQL(ctx, driver, opts.DSN)
	case "redis":
		return OpenRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
