package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const clipCols = `id, title, url, year, summary, still_id, published_at, created_at, updated_at`

type PostgresClipRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresClipRepo(pool *pgxpool.Pool) ports.ClipRepository {
	return &PostgresClipRepo{pool: pool}
}

var clipList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"title":     "title",
		"year":      "year",
		"createdAt": "created_at",
	},
	search:    []string{"title", "summary"},
	filters:   map[string]string{"year": "year"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanClip(row pgx.Row) (*models.Clip, error) {
	var c models.Clip
	err := row.Scan(
		&c.ID, &c.Title, &c.URL, &c.Year, &c.Summary, &c.StillID,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresClipRepo) List(ctx context.Context, p ports.ListParams) ([]models.Clip, int64, error) {
	where, args, order := clipList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Clip{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM clips`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+clipCols+` FROM clips`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanClip(rows)
			if err != nil {
				return err
			}
			items = append(items, *c)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list clips: %w", err)
	}
	return items, total, nil
}

func (r *PostgresClipRepo) GetByID(ctx context.Context, id int64) (*models.Clip, error) {
	c, err := scanClip(r.pool.QueryRow(ctx, `SELECT `+clipCols+` FROM clips WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get clip: %w", err)
	}
	if c.Still, err = fetchUploadFile(ctx, r.pool, c.StillID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresClipRepo) Insert(ctx context.Context, c *models.Clip) (*models.Clip, error) {
	query := `
		INSERT INTO clips (title, url, year, summary, still_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, c.Title, c.URL, c.Year, c.Summary, c.StillID)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert clip: %w", err)
	}
	return c, nil
}

func (r *PostgresClipRepo) Update(ctx context.Context, c *models.Clip) error {
	query := `
		UPDATE clips
		SET title = $1, url = $2, year = $3, summary = $4, still_id = $5, updated_at = now()
		WHERE id = $6
	`
	tag, err := r.pool.Exec(ctx, query, c.Title, c.URL, c.Year, c.Summary, c.StillID, c.ID)
	if err != nil {
		return fmt.Errorf("update clip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresClipRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete clip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresClipRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "clips", id)
}
