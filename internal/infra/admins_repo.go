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

const adminCols = `id, email, name, password_hash, role, created_at`

type PostgresAdminRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAdminRepo(pool *pgxpool.Pool) ports.AdminRepository {
	return &PostgresAdminRepo{pool: pool}
}

var adminList = listSpec{
	defaultSort: "created_at ASC",
	sortable: map[string]string{
		"email":     "email",
		"name":      "name",
		"createdAt": "created_at",
	},
	search:  []string{"email", "name"},
	filters: map[string]string{"role": "role"},
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var a models.Admin
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAdminRepo) List(ctx context.Context, p ports.ListParams) ([]models.Admin, int64, error) {
	where, args, order := adminList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Admin{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM admins`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+adminCols+` FROM admins`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanAdmin(rows)
			if err != nil {
				return err
			}
			items = append(items, *a)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}
	return items, total, nil
}

func (r *PostgresAdminRepo) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	a, err := scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminCols+` FROM admins WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

func (r *PostgresAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, err := scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminCols+` FROM admins WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return a, nil
}

func (r *PostgresAdminRepo) Insert(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	query := `
		INSERT INTO admins (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query, a.Email, a.Name, a.PasswordHash, a.Role)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		if uniqueViolation(err) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

func (r *PostgresAdminRepo) Update(ctx context.Context, a *models.Admin) error {
	query := `
		UPDATE admins
		SET email = $1, name = $2, password_hash = $3, role = $4
		WHERE id = $5
	`
	tag, err := r.pool.Exec(ctx, query, a.Email, a.Name, a.PasswordHash, a.Role, a.ID)
	if err != nil {
		if uniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresAdminRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresAdminRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM admins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}
