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

const bookCols = `id, title, author, publisher, year, isbn, summary, cover_id, published_at, created_at, updated_at`

type PostgresBookRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepo(pool *pgxpool.Pool) ports.BookRepository {
	return &PostgresBookRepo{pool: pool}
}

var bookList = listSpec{
	defaultSort: "created_at DESC",
	sortable: map[string]string{
		"title":     "title",
		"author":    "author",
		"year":      "year",
		"createdAt": "created_at",
	},
	search:    []string{"title", "author", "publisher", "isbn"},
	filters:   map[string]string{"year": "year"},
	nullFlags: map[string]string{"published": "published_at"},
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var b models.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN,
		&b.Summary, &b.CoverID, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBookRepo) List(ctx context.Context, p ports.ListParams) ([]models.Book, int64, error) {
	where, args, order := bookList.build(p)
	pageSQL, pageArgs := window(args, p)

	items := []models.Book{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM books`+where, args...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `SELECT `+bookCols+` FROM books`+where+order+pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			b, err := scanBook(rows)
			if err != nil {
				return err
			}
			items = append(items, *b)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return items, total, nil
}

func (r *PostgresBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookCols+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	if b.Cover, err = fetchUploadFile(ctx, r.pool, b.CoverID); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBookRepo) Insert(ctx context.Context, b *models.Book) (*models.Book, error) {
	query := `
		INSERT INTO books (title, author, publisher, year, isbn, summary, cover_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query,
		b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Summary, b.CoverID,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *PostgresBookRepo) Update(ctx context.Context, b *models.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, publisher = $3, year = $4, isbn = $5,
		    summary = $6, cover_id = $7, updated_at = now()
		WHERE id = $8
	`
	tag, err := r.pool.Exec(ctx, query,
		b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Summary, b.CoverID, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresBookRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresBookRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return togglePublishedAt(ctx, r.pool, "books", id)
}
