package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type BookRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Insert(ctx context.Context, b *models.Book) (*models.Book, error)
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
