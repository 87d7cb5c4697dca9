package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type MessageRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Message, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	Insert(ctx context.Context, m *models.Message) (*models.Message, error)
	Delete(ctx context.Context, id int64) error

	// ToggleRead flips read_at between null and now, returning the new value.
	ToggleRead(ctx context.Context, id int64) (*time.Time, error)
}
