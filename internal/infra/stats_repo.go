package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type PostgresStatsRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresStatsRepo(pool *pgxpool.Pool) ports.StatsRepository {
	return &PostgresStatsRepo{pool: pool}
}

// Counts gathers the dashboard counters, one query per counter, fanned out
// on the pool.
func (r *PostgresStatsRepo) Counts(ctx context.Context) (*models.Stats, error) {
	var s models.Stats

	g, gctx := errgroup.WithContext(ctx)

	count := func(query string, dst *int64) {
		g.Go(func() error {
			return r.pool.QueryRow(gctx, query).Scan(dst)
		})
	}

	count(`SELECT count(*) FROM books`, &s.Books)
	count(`SELECT count(*) FROM cds`, &s.Cds)
	count(`SELECT count(*) FROM dvds`, &s.Dvds)
	count(`SELECT count(*) FROM clips`, &s.Clips)
	count(`SELECT count(*) FROM lyrics`, &s.Lyrics)
	count(`SELECT count(*) FROM photos`, &s.Photos)
	count(`SELECT count(*) FROM shows`, &s.Shows)
	count(`SELECT count(*) FROM texts`, &s.Texts)
	count(`SELECT count(*) FROM messages`, &s.Messages)
	count(`SELECT count(*) FROM messages WHERE read_at IS NULL`, &s.UnreadMessages)
	count(`SELECT count(*) FROM upload_files`, &s.Files)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats counts: %w", err)
	}
	return &s, nil
}
