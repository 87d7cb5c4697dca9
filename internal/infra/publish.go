package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// togglePublishedAt flips published_at between null and now in one
// statement, so two concurrent toggles cannot both see the same old state.
func togglePublishedAt(ctx context.Context, pool *pgxpool.Pool, table string, id int64) (*time.Time, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET published_at = CASE WHEN published_at IS NULL THEN now() ELSE NULL END,
		    updated_at = now()
		WHERE id = $1
		RETURNING published_at
	`, table)

	var at *time.Time
	if err := pool.QueryRow(ctx, query, id).Scan(&at); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("toggle publish %s: %w", table, err)
	}
	return at, nil
}
