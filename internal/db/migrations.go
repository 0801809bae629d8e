package db

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations. The exclusion constraints
// created here are the real double-booking guarantee; the application-level
// overlap check only exists for fast, friendly rejections.
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("migrate: sqlx connection not initialized")
	}

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}

	if err := goose.Up(DB.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}
