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

const messageCols = `id, name, email, subject, body, read_at, created_at`

type PostgresMessageRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageRepo(pool *pgxpool.Pool) ports.MessageRepository {
	return &PostgresMessageRepo{pool: pool}
}

var messageList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	search:    []string{"name", "email", "subject", "body"},
	nullFlags: map[string]string{"read": "read_at"},
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.ReadAt, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMessageRepo) List(ctx context.Context, p ports.ListParams) ([]models.Message, int64, error) {
	where, args, order := messageList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Message{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM messages`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+messageCols+` FROM messages`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			m, err := scanMessage(rows)
			if err != nil {
				return err
			}
			items = append(items, *m)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	return items, total, nil
}

func (r *PostgresMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, err := scanMessage(r.pool.QueryRow(ctx, `SELECT `+messageCols+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (r *PostgresMessageRepo) Insert(ctx context.Context, m *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO messages (name, email, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query, m.Name, m.Email, m.Subject, m.Body)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *PostgresMessageRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepo) ToggleRead(ctx context.Context, id int64) (*time.Time, error) {
	query := `
		UPDATE messages
		SET read_at = CASE WHEN read_at IS NULL THEN now() ELSE NULL END
		WHERE id = $1
		RETURNING read_at
	`
	var at *time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(&at); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("toggle read: %w", err)
	}
	return at, nil
}
