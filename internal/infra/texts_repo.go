package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const textCols = `id, title, slug, author, body, published_at, created_at, updated_at`

type PostgresTextRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTextRepo(pool *pgxpool.Pool) ports.TextRepository {
	return &PostgresTextRepo{pool: pool}
}

var textList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"title":     "title",
		"author":    "author",
		"createdAt": "created_at",
	},
	search:    []string{"title", "author", "body"},
	nullFlags: map[string]string{"published": "published_at"},
}

// uniqueViolation maps a duplicate-slug insert to the conflict sentinel.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanText(row pgx.Row) (*models.Text, error) {
	var t models.Text
	err := row.Scan(
		&t.ID, &t.Title, &t.Slug, &t.Author, &t.Body,
		&t.PublishedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTextRepo) List(ctx context.Context, p ports.ListParams) ([]models.Text, int64, error) {
	where, args, order := textList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Text{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM texts`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+textCols+` FROM texts`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			t, err := scanText(rows)
			if err != nil {
				return err
			}
			items = append(items, *t)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list texts: %w", err)
	}
	return items, total, nil
}

func (r *PostgresTextRepo) GetByID(ctx context.Context, id int64) (*models.Text, error) {
	t, err := scanText(r.pool.QueryRow(ctx, `SELECT `+textCols+` FROM texts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get text: %w", err)
	}
	return t, nil
}

func (r *PostgresTextRepo) Insert(ctx context.Context, t *models.Text) (*models.Text, error) {
	query := `
		INSERT INTO texts (title, slug, author, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, t.Title, t.Slug, t.Author, t.Body)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if uniqueViolation(err) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("insert text: %w", err)
	}
	return t, nil
}

func (r *PostgresTextRepo) Update(ctx context.Context, t *models.Text) error {
	query := `
		UPDATE texts
		SET title = $1, slug = $2, author = $3, body = $4, updated_at = now()
		WHERE id = $5
	`
	tag, err := r.pool.Exec(ctx, query, t.Title, t.Slug, t.Author, t.Body, t.ID)
	if err != nil {
		if uniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("update text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresTextRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM texts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresTextRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "texts", id)
}
