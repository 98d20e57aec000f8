package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"sync"

	"github.com/pressly/goose/v3"

	// Register the pgx stdlib driver for database/sql usage in migrations.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema/*.sql
var migrationsFS embed.FS

// goose keeps its FS and dialect in package globals.
var gooseMu sync.Mutex

const migrationsDir = "schema"

// OpenDB opens a database/sql handle on the pgx driver for goose.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db for migrations: %w", err)
	}
	return db, nil
}

func withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}

func MigrateUp(ctx context.Context, db *sql.DB) error {
	return withGoose(func() error {
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

func MigrateDown(ctx context.Context, db *sql.DB) error {
	return withGoose(func() error {
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

// MigrationStatus writes one line per migration to out.
func MigrationStatus(ctx context.Context, db *sql.DB, out io.Writer) error {
	return withGoose(func() error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("read db version: %w", err)
		}
		migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
		if err != nil {
			return fmt.Errorf("collect migrations: %w", err)
		}
		for _, m := range migrations {
			state := "pending"
			if m.Version <= current {
				state = "applied"
			}
			if _, err := fmt.Fprintf(out, "%-8s %05d %s\n", state, m.Version, m.Source); err != nil {
				return err
			}
		}
		return nil
	})
}
