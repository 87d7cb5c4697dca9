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

const photoCols = `id, title, caption, credit, taken, image_id, published_at, created_at, updated_at`

type PostgresPhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPhotoRepo(pool *pgxpool.Pool) ports.PhotoRepository {
	return &PostgresPhotoRepo{pool: pool}
}

var photoList = listSpec{
	defaultSort: "taken DESC",
	sortable: map[string]string{
		"title":     "title",
		"taken":     "taken",
		"createdAt": "created_at",
	},
	search:    []string{"title", "caption", "credit"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanPhoto(row pgx.Row) (*models.Photo, error) {
	var ph models.Photo
	err := row.Scan(
		&ph.ID, &ph.Title, &ph.Caption, &ph.Credit, &ph.Taken, &ph.ImageID,
		&ph.PublishedAt, &ph.CreatedAt, &ph.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &ph, nil
}

func (r *PostgresPhotoRepo) List(ctx context.Context, p ports.ListParams) ([]models.Photo, int64, error) {
	where, args, order := photoList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Photo{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM photos`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+photoCols+` FROM photos`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			ph, err := scanPhoto(rows)
			if err != nil {
				return err
			}
			items = append(items, *ph)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list photos: %w", err)
	}
	return items, total, nil
}

func (r *PostgresPhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	ph, err := scanPhoto(r.pool.QueryRow(ctx, `SELECT `+photoCols+` FROM photos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	if ph.Image, err = fetchUploadFile(ctx, r.pool, ph.ImageID); err != nil {
		return nil, err
	}
	return ph, nil
}

func (r *PostgresPhotoRepo) Insert(ctx context.Context, ph *models.Photo) (*models.Photo, error) {
	query := `
		INSERT INTO photos (title, caption, credit, taken, image_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query, ph.Title, ph.Caption, ph.Credit, ph.Taken, ph.ImageID)
	if err := row.Scan(&ph.ID, &ph.CreatedAt, &ph.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return ph, nil
}

func (r *PostgresPhotoRepo) Update(ctx context.Context, ph *models.Photo) error {
	query := `
		UPDATE photos
		SET title = $1, caption = $2, credit = $3, taken = $4, image_id = $5, updated_at = now()
		WHERE id = $6
	`
	tag, err := r.pool.Exec(ctx, query, ph.Title, ph.Caption, ph.Credit, ph.Taken, ph.ImageID, ph.ID)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresPhotoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresPhotoRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "photos", id)
}
