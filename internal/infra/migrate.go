package infra

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// columnMigration adds a column to a table created by an older build. The
// base schema is idempotent (IF NOT EXISTS throughout), so new installs get
// everything in one shot and old ones are patched column by column.
type columnMigration struct {
	Table  string
	Column string
	Def    string
}

var pendingMigrations = []columnMigration{
	// kind was derived from mime on read before it became a column
	{"upload_files", "kind", "TEXT NOT NULL DEFAULT 'other'"},
	// checksum added for duplicate detection in the media library
	{"upload_files", "sha256", "TEXT NOT NULL DEFAULT ''"},
	// track -> lyric link, added with the lyrics screen
	{"cd_tracks", "lyric_id", "BIGINT"},
}

// Migrate applies the embedded schema and any pending column migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	applied := 0
	for _, m := range pendingMigrations {
		q := fmt.Sprintf(
			`ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s`,
			m.Table, m.Column, m.Def,
		)
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrate %s.%s: %w", m.Table, m.Column, err)
		}
		applied++
	}

	log.Printf("[migrate] schema ok, column migrations=%d", applied)
	return nil
}
