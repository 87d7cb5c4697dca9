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

const cdCols = `id, title, artist, label, year, format, notes, cover_id, published_at, created_at, updated_at`

type PostgresCdRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCdRepo(pool *pgxpool.Pool) ports.CdRepository {
	return &PostgresCdRepo{pool: pool}
}

var cdList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"title":     "title",
		"artist":    "artist",
		"year":      "year",
		"createdAt": "created_at",
	},
	search:    []string{"title", "artist", "label"},
	filters:   map[string]string{"year": "year", "format": "format"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanCd(row pgx.Row) (*models.Cd, error) {
	var cd models.Cd
	err := row.Scan(
		&cd.ID, &cd.Title, &cd.Artist, &cd.Label, &cd.Year, &cd.Format,
		&cd.Notes, &cd.CoverID, &cd.PublishedAt, &cd.CreatedAt, &cd.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &cd, nil
}

func (r *PostgresCdRepo) List(ctx context.Context, p ports.ListParams) ([]models.Cd, int64, error) {
	where, args, order := cdList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Cd{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM cds`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+cdCols+` FROM cds`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			cd, err := scanCd(rows)
			if err != nil {
				return err
			}
			items = append(items, *cd)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list cds: %w", err)
	}
	return items, total, nil
}

func (r *PostgresCdRepo) GetByID(ctx context.Context, id int64) (*models.Cd, error) {
	cd, err := scanCd(r.pool.QueryRow(ctx, `SELECT `+cdCols+` FROM cds WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get cd: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, cd_id, position, title, duration_secs, lyric_id
		 FROM cd_tracks WHERE cd_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get cd tracks: %w", err)
	}
	defer rows.Close()

	cd.Tracks = []models.CdTrack{}
	for rows.Next() {
		var t models.CdTrack
		if err := rows.Scan(&t.ID, &t.CdID, &t.Position, &t.Title, &t.DurationSecs, &t.LyricID); err != nil {
			return nil, err
		}
		cd.Tracks = append(cd.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cd.Cover, err = fetchUploadFile(ctx, r.pool, cd.CoverID); err != nil {
		return nil, err
	}
	return cd, nil
}

func (r *PostgresCdRepo) Insert(ctx context.Context, cd *models.Cd) (*models.Cd, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert cd: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO cds (title, artist, label, year, format, notes, cover_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	row := tx.QueryRow(ctx, query,
		cd.Title, cd.Artist, cd.Label, cd.Year, cd.Format, cd.Notes, cd.CoverID,
	)
	if err := row.Scan(&cd.ID, &cd.CreatedAt, &cd.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert cd: %w", err)
	}

	for i := range cd.Tracks {
		t := &cd.Tracks[i]
		t.CdID = cd.ID
		t.Position = i + 1
		err := tx.QueryRow(ctx,
			`INSERT INTO cd_tracks (cd_id, position, title, duration_secs, lyric_id)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			t.CdID, t.Position, t.Title, t.DurationSecs, t.LyricID,
		).Scan(&t.ID)
		if err != nil {
			return nil, fmt.Errorf("insert cd track: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert cd: %w", err)
	}
	return cd, nil
}

// Update rewrites the CD row and reconciles cd.Tracks against the stored
// sub-rows in the same transaction. Matching is by id, scoped to this cd_id,
// so an id from another CD's track list lands as a fresh row instead of
// touching foreign data.
func (r *PostgresCdRepo) Update(ctx context.Context, cd *models.Cd) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update cd: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE cds
		SET title = $1, artist = $2, label = $3, year = $4, format = $5,
		    notes = $6, cover_id = $7, updated_at = now()
		WHERE id = $8
	`
	tag, err := tx.Exec(ctx, query,
		cd.Title, cd.Artist, cd.Label, cd.Year, cd.Format, cd.Notes, cd.CoverID, cd.ID,
	)
	if err != nil {
		return fmt.Errorf("update cd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	stored, err := storedTrackIDs(ctx, tx, "cd_tracks", "cd_id", cd.ID)
	if err != nil {
		return err
	}
	incoming := make([]int64, len(cd.Tracks))
	for i, t := range cd.Tracks {
		incoming[i] = t.ID
	}
	plan := planTracks(stored, incoming)

	for i := range cd.Tracks {
		t := &cd.Tracks[i]
		t.CdID = cd.ID
		t.Position = i + 1

		if plan.Keep[t.ID] {
			_, err = tx.Exec(ctx,
				`UPDATE cd_tracks
				 SET position = $1, title = $2, duration_secs = $3, lyric_id = $4
				 WHERE id = $5 AND cd_id = $6`,
				t.Position, t.Title, t.DurationSecs, t.LyricID, t.ID, cd.ID,
			)
		} else {
			err = tx.QueryRow(ctx,
				`INSERT INTO cd_tracks (cd_id, position, title, duration_secs, lyric_id)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				t.CdID, t.Position, t.Title, t.DurationSecs, t.LyricID,
			).Scan(&t.ID)
		}
		if err != nil {
			return fmt.Errorf("reconcile cd track: %w", err)
		}
	}

	if len(plan.Deletes) > 0 {
		_, err = tx.Exec(ctx,
			`DELETE FROM cd_tracks WHERE cd_id = $1 AND id = ANY($2)`,
			cd.ID, plan.Deletes,
		)
		if err != nil {
			return fmt.Errorf("delete removed cd tracks: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update cd: %w", err)
	}
	return nil
}

func (r *PostgresCdRepo) Delete(ctx context.Context, id int64) error {
	// cd_tracks go with the row via ON DELETE CASCADE
	tag, err := r.pool.Exec(ctx, `DELETE FROM cds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresCdRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "cds", id)
}

func storedTrackIDs(ctx context.Context, tx pgx.Tx, table, fkCol string, parentID int64) ([]int64, error) {
	rows, err := tx.Query(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE %s = $1`, table, fkCol), parentID)
	if err != nil {
		return nil, fmt.Errorf("stored track ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
