package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema. Every statement is idempotent, so running it
// on each start is safe.
func Migrate(ctx context.Context, db *database.DB) error {
	err := WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		// serialize concurrent starts
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('hris-attendance-schema'))`); err != nil {
			return err
		}
		_, err := q.Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info("Database schema applied")
	return nil
}
