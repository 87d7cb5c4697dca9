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

const showCols = `id, venue, city, country, show_date, notes, published_at, created_at, updated_at`

type PostgresShowRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresShowRepo(pool *pgxpool.Pool) ports.ShowRepository {
	return &PostgresShowRepo{pool: pool}
}

var showList = listSpec{
	defaultSort: "show_date DESC",
	sortable: map[string]string{
		"venue":     "venue",
		"city":      "city",
		"date":      "show_date",
		"createdAt": "created_at",
	},
	search:    []string{"venue", "city", "country"},
	filters:   map[string]string{"country": "country"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanShow(row pgx.Row) (*models.Show, error) {
	var s models.Show
	err := row.Scan(
		&s.ID, &s.Venue, &s.City, &s.Country, &s.ShowDate, &s.Notes,
		&s.PublishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresShowRepo) List(ctx context.Context, p ports.ListParams) ([]models.Show, int64, error) {
	where, args, order := showList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Show{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM shows`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+showCols+` FROM shows`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			s, err := scanShow(rows)
			if err != nil {
				return err
			}
			items = append(items, *s)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list shows: %w", err)
	}
	return items, total, nil
}

func (r *PostgresShowRepo) GetByID(ctx context.Context, id int64) (*models.Show, error) {
	s, err := scanShow(r.pool.QueryRow(ctx, `SELECT `+showCols+` FROM shows WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get show: %w", err)
	}
	return s, nil
}

func (r *PostgresShowRepo) Insert(ctx context.Context, s *models.Show) (*models.Show, error) {
	query := `
		INSERT INTO shows (venue, city, country, show_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, s.Venue, s.City, s.Country, s.ShowDate, s.Notes)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert show: %w", err)
	}
	return s, nil
}

func (r *PostgresShowRepo) Update(ctx context.Context, s *models.Show) error {
	query := `
		UPDATE shows
		SET venue = $1, city = $2, country = $3, show_date = $4, notes = $5, updated_at = now()
		WHERE id = $6
	`
	tag, err := r.pool.Exec(ctx, query, s.Venue, s.City, s.Country, s.ShowDate, s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("update show: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresShowRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresShowRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "shows", id)
}
