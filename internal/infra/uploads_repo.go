package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const uploadFileCols = `id, name, original_name, mime, kind, size_bytes, path, url, sha256, width, height, duration_secs, created_at`

type PostgresUploadRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUploadRepo(pool *pgxpool.Pool) ports.UploadRepository {
	return &PostgresUploadRepo{pool: pool}
}

var uploadList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"name":      "name",
		"size":      "size_bytes",
		"createdAt": "created_at",
	},
	search:  []string{"name", "original_name"},
	filters: map[string]string{"kind": "kind"},
}

func scanUploadFile(row pgx.Row) (*models.UploadFile, error) {
	var f models.UploadFile
	err := row.Scan(
		&f.ID, &f.Name, &f.OriginalName, &f.Mime, &f.Kind, &f.SizeBytes,
		&f.Path, &f.URL, &f.Sha256, &f.Width, &f.Height, &f.DurationSecs,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// fetchUploadFile resolves a nullable file reference for detail responses.
// A dangling or nil id yields nil, not an error.
func fetchUploadFile(ctx context.Context, pool *pgxpool.Pool, id *int64) (*models.UploadFile, error) {
	if id == nil {
		return nil, nil
	}
	f, err := scanUploadFile(pool.QueryRow(ctx,
		`SELECT `+uploadFileCols+` FROM upload_files WHERE id = $1`, *id,
	))
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch upload file: %w", err)
	}
	return f, nil
}

func (r *PostgresUploadRepo) List(ctx context.Context, p ports.ListParams) ([]models.UploadFile, int64, error) {
	where, args, order := uploadList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.UploadFile{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM upload_files`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx,
			`SELECT `+uploadFileCols+` FROM upload_files`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			f, err := scanUploadFile(rows)
			if err != nil {
				return err
			}
			items = append(items, *f)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list upload files: %w", err)
	}
	return items, total, nil
}

func (r *PostgresUploadRepo) GetByID(ctx context.Context, id int64) (*models.UploadFile, error) {
	f, err := scanUploadFile(r.pool.QueryRow(ctx,
		`SELECT `+uploadFileCols+` FROM upload_files WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get upload file: %w", err)
	}
	return f, nil
}

func (r *PostgresUploadRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UploadFile, error) {
	out := make(map[int64]*models.UploadFile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+uploadFileCols+` FROM upload_files WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("get upload files: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		f, err := scanUploadFile(rows)
		if err != nil {
			return nil, err
		}
		out[f.ID] = f
	}
	return out, rows.Err()
}

func (r *PostgresUploadRepo) Insert(ctx context.Context, f *models.UploadFile) (*models.UploadFile, error) {
	query := `
		INSERT INTO upload_files
			(name, original_name, mime, kind, size_bytes, path, url, sha256, width, height, duration_secs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		f.Name, f.OriginalName, f.Mime, f.Kind, f.SizeBytes,
		f.Path, f.URL, f.Sha256, f.Width, f.Height, f.DurationSecs,
	)
	if err := row.Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert upload file: %w", err)
	}
	return f, nil
}

func (r *PostgresUploadRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM upload_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete upload file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresUploadRepo) RefsForFile(ctx context.Context, fileID int64) ([]models.UploadRef, error) {
	return r.queryRefs(ctx,
		`SELECT file_id, owner_kind, owner_id, owner_field FROM upload_refs WHERE file_id = $1`,
		fileID)
}

func (r *PostgresUploadRepo) RefsForOwner(ctx context.Context, owner models.Owner) ([]models.UploadRef, error) {
	return r.queryRefs(ctx,
		`SELECT file_id, owner_kind, owner_id, owner_field FROM upload_refs WHERE owner_kind = $1 AND owner_id = $2`,
		owner.Kind, owner.ID)
}

func (r *PostgresUploadRepo) queryRefs(ctx context.Context, query string, args ...any) ([]models.UploadRef, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query upload refs: %w", err)
	}
	defer rows.Close()

	var refs []models.UploadRef
	for rows.Next() {
		var ref models.UploadRef
		if err := rows.Scan(&ref.FileID, &ref.OwnerKind, &ref.OwnerID, &ref.Field); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *PostgresUploadRepo) RefForOwnerField(ctx context.Context, owner models.Owner, field string) (*models.UploadRef, error) {
	var ref models.UploadRef
	err := r.pool.QueryRow(ctx,
		`SELECT file_id, owner_kind, owner_id, owner_field
		 FROM upload_refs
		 WHERE owner_kind = $1 AND owner_id = $2 AND owner_field = $3`,
		owner.Kind, owner.ID, field,
	).Scan(&ref.FileID, &ref.OwnerKind, &ref.OwnerID, &ref.Field)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get upload ref: %w", err)
	}
	return &ref, nil
}

func (r *PostgresUploadRepo) InsertRef(ctx context.Context, ref models.UploadRef) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO upload_refs (file_id, owner_kind, owner_id, owner_field)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING`,
		ref.FileID, ref.OwnerKind, ref.OwnerID, ref.Field,
	)
	if err != nil {
		return fmt.Errorf("insert upload ref: %w", err)
	}
	return nil
}

func (r *PostgresUploadRepo) DeleteRef(ctx context.Context, ref models.UploadRef) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM upload_refs
		 WHERE file_id = $1 AND owner_kind = $2 AND owner_id = $3 AND owner_field = $4`,
		ref.FileID, ref.OwnerKind, ref.OwnerID, ref.Field,
	)
	if err != nil {
		return fmt.Errorf("delete upload ref: %w", err)
	}
	return nil
}

func (r *PostgresUploadRepo) CountRefs(ctx context.Context, fileID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM upload_refs WHERE file_id = $1`, fileID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count upload refs: %w", err)
	}
	return n, nil
}
