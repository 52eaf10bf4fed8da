// Package store opens the configured SQL backend and builds the matching
// record repository.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shop-analytics-service/internal/records/adapters/mysql"
	"shop-analytics-service/internal/records/adapters/postgres"
	"shop-analytics-service/internal/records/adapters/sqldb"
	"shop-analytics-service/internal/records/core/ports"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var ErrUnsupportedDriver = errors.New("unsupported store driver")

// Repository is what the records use cases need from a backend.
type Repository interface {
	ports.RecordWriterPort
	ports.RecordReaderPort
	Migrate(ctx context.Context) error
}

type Options struct {
	Driver string
	DSN    string
	Table  string
}

// Open connects to the backend, verifies the connection and returns the
// repository with its underlying pool (callers own Close).
func Open(ctx context.Context, opts Options) (Repository, *sql.DB, error) {
	dsn := opts.DSN
	if opts.Driver == DriverMySQL {
		var err error
		if dsn, err = toMySQLDSN(dsn); err != nil {
			return nil, nil, err
		}
	}
	if opts.Driver != DriverPostgres && opts.Driver != DriverMySQL {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Driver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	repo, err := NewRepository(opts.Driver, db, opts.Table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}

func NewRepository(driver string, db *sql.DB, table string) (Repository, error) {
	switch driver {
	case DriverPostgres:
		return postgres.NewRecordRepository(sqldb.Wrap(db), table), nil
	case DriverMySQL:
		repo, err := mysql.NewRecordRepository(sqldb.Wrap(db), table)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// toMySQLDSN converts mysql:// or mariadb:// URLs into the driver's native DSN;
// anything else is passed through.
func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		return dsn, nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}

	user, pass := "", ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn (user/host/db)")
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", user, pass, host, db), nil
}
