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

const dvdCols = `id, title, director, label, year, region, notes, cover_id, published_at, created_at, updated_at`

type PostgresDvdRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresDvdRepo(pool *pgxpool.Pool) ports.DvdRepository {
	return &PostgresDvdRepo{pool: pool}
}

var dvdList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"title":     "title",
		"director":  "director",
		"year":      "year",
		"createdAt": "created_at",
	},
	search:    []string{"title", "director", "label"},
	filters:   map[string]string{"year": "year"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanDvd(row pgx.Row) (*models.Dvd, error) {
	var d models.Dvd
	err := row.Scan(
		&d.ID, &d.Title, &d.Director, &d.Label, &d.Year, &d.Region,
		&d.Notes, &d.CoverID, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PostgresDvdRepo) List(ctx context.Context, p ports.ListParams) ([]models.Dvd, int64, error) {
	where, args, order := dvdList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Dvd{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM dvds`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+dvdCols+` FROM dvds`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			d, err := scanDvd(rows)
			if err != nil {
				return err
			}
			items = append(items, *d)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list dvds: %w", err)
	}
	return items, total, nil
}

func (r *PostgresDvdRepo) GetByID(ctx context.Context, id int64) (*models.Dvd, error) {
	d, err := scanDvd(r.pool.QueryRow(ctx, `SELECT `+dvdCols+` FROM dvds WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get dvd: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, dvd_id, position, title, duration_secs
		 FROM dvd_tracks WHERE dvd_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get dvd tracks: %w", err)
	}
	defer rows.Close()

	d.Tracks = []models.DvdTrack{}
	for rows.Next() {
		var t models.DvdTrack
		if err := rows.Scan(&t.ID, &t.DvdID, &t.Position, &t.Title, &t.DurationSecs); err != nil {
			return nil, err
		}
		d.Tracks = append(d.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if d.Cover, err = fetchUploadFile(ctx, r.pool, d.CoverID); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresDvdRepo) Insert(ctx context.Context, dvd *models.Dvd) (*models.Dvd, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert dvd: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO dvds (title, director, label, year, region, notes, cover_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	row := tx.QueryRow(ctx, query,
		dvd.Title, dvd.Director, dvd.Label, dvd.Year, dvd.Region, dvd.Notes, dvd.CoverID,
	)
	if err := row.Scan(&dvd.ID, &dvd.CreatedAt, &dvd.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert dvd: %w", err)
	}

	for i := range dvd.Tracks {
		t := &dvd.Tracks[i]
		t.DvdID = dvd.ID
		t.Position = i + 1
		err := tx.QueryRow(ctx,
			`INSERT INTO dvd_tracks (dvd_id, position, title, duration_secs)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			t.DvdID, t.Position, t.Title, t.DurationSecs,
		).Scan(&t.ID)
		if err != nil {
			return nil, fmt.Errorf("insert dvd track: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert dvd: %w", err)
	}
	return dvd, nil
}

// Update follows the same reconciliation as PostgresCdRepo.Update.
func (r *PostgresDvdRepo) Update(ctx context.Context, dvd *models.Dvd) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update dvd: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE dvds
		SET title = $1, director = $2, label = $3, year = $4, region = $5,
		    notes = $6, cover_id = $7, updated_at = now()
		WHERE id = $8
	`
	tag, err := tx.Exec(ctx, query,
		dvd.Title, dvd.Director, dvd.Label, dvd.Year, dvd.Region, dvd.Notes, dvd.CoverID, dvd.ID,
	)
	if err != nil {
		return fmt.Errorf("update dvd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	stored, err := storedTrackIDs(ctx, tx, "dvd_tracks", "dvd_id", dvd.ID)
	if err != nil {
		return err
	}
	incoming := make([]int64, len(dvd.Tracks))
	for i, t := range dvd.Tracks {
		incoming[i] = t.ID
	}
	plan := planTracks(stored, incoming)

	for i := range dvd.Tracks {
		t := &dvd.Tracks[i]
		t.DvdID = dvd.ID
		t.Position = i + 1

		if plan.Keep[t.ID] {
			_, err = tx.Exec(ctx,
				`UPDATE dvd_tracks
				 SET position = $1, title = $2, duration_secs = $3
				 WHERE id = $4 AND dvd_id = $5`,
				t.Position, t.Title, t.DurationSecs, t.ID, dvd.ID,
			)
		} else {
			err = tx.QueryRow(ctx,
				`INSERT INTO dvd_tracks (dvd_id, position, title, duration_secs)
				 VALUES ($1, $2, $3, $4) RETURNING id`,
				t.DvdID, t.Position, t.Title, t.DurationSecs,
			).Scan(&t.ID)
		}
		if err != nil {
			return fmt.Errorf("reconcile dvd track: %w", err)
		}
	}

	if len(plan.Deletes) > 0 {
		_, err = tx.Exec(ctx,
			`DELETE FROM dvd_tracks WHERE dvd_id = $1 AND id = ANY($2)`,
			dvd.ID, plan.Deletes,
		)
		if err != nil {
			return fmt.Errorf("delete removed dvd tracks: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update dvd: %w", err)
	}
	return nil
}

func (r *PostgresDvdRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dvds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dvd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresDvdRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "dvds", id)
}
