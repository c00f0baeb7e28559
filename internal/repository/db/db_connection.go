package db

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskmate/internal/config"
)

const (
	DriverSQLite   = config.DriverSQLite
	DriverPostgres = config.DriverPostgres

	sqliteDriverName = "sqlite"
	pgxDriverName    = "pgx"
)

// sqlitePragmas run on every new connection modernc opens, not just the first one.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

func init() {
	// modernc registers as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)
}

// Open connects to the configured store, applies pool settings, pings it and runs migrations.
// The returned handle is shared by every repository and closed by the caller on shutdown.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)
	switch cfg.Driver {
	case DriverSQLite:
		conn, err = openSQLite(ctx, cfg.Path)
	case DriverPostgres:
		conn, err = openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, conn.DB, cfg.Driver); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func openSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	conn, err := sqlx.Open(sqliteDriverName, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return conn, nil
}

// sqliteDSN appends the pragmas as modernc _pragma query parameters.
func sqliteDSN(path string) string {
	params := make([]string, len(sqlitePragmas))
	for i, p := range sqlitePragmas {
		params[i] = "_pragma=" + p
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	conn, err := sqlx.Open(pgxDriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}
