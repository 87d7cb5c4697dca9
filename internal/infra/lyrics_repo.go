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

const lyricCols = `id, title, body, year, credits, published_at, created_at, updated_at`

type PostgresLyricRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresLyricRepo(pool *pgxpool.Pool) ports.LyricRepository {
	return &PostgresLyricRepo{pool: pool}
}

var lyricList = listSpec{
	defaultSort: "title ASC",
	sortable: map[string]string{
		"title":     "title",
		"year":      "year",
		"createdAt": "created_at",
	},
	search:    []string{"title", "body", "credits"},
	filters:   map[string]string{"year": "year"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanLyric(row pgx.Row) (*models.Lyric, error) {
	var l models.Lyric
	err := row.Scan(
		&l.ID, &l.Title, &l.Body, &l.Year, &l.Credits,
		&l.PublishedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PostgresLyricRepo) List(ctx context.Context, p ports.ListParams) ([]models.Lyric, int64, error) {
	where, args, order := lyricList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Lyric{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM lyrics`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+lyricCols+` FROM lyrics`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			l, err := scanLyric(rows)
			if err != nil {
				return err
			}
			items = append(items, *l)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list lyrics: %w", err)
	}
	return items, total, nil
}

func (r *PostgresLyricRepo) GetByID(ctx context.Context, id int64) (*models.Lyric, error) {
	l, err := scanLyric(r.pool.QueryRow(ctx, `SELECT `+lyricCols+` FROM lyrics WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get lyric: %w", err)
	}
	return l, nil
}

func (r *PostgresLyricRepo) Insert(ctx context.Context, l *models.Lyric) (*models.Lyric, error) {
	query := `
		INSERT INTO lyrics (title, body, year, credits)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, l.Title, l.Body, l.Year, l.Credits)
	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert lyric: %w", err)
	}
	return l, nil
}

func (r *PostgresLyricRepo) Update(ctx context.Context, l *models.Lyric) error {
	query := `
		UPDATE lyrics
		SET title = $1, body = $2, year = $3, credits = $4, updated_at = now()
		WHERE id = $5
	`
	tag, err := r.pool.Exec(ctx, query, l.Title, l.Body, l.Year, l.Credits, l.ID)
	if err != nil {
		return fmt.Errorf("update lyric: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresLyricRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lyrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lyric: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresLyricRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "lyrics", id)
}
