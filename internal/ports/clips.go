package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type ClipRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Clip, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Clip, error)
	Insert(ctx context.Context, c *models.Clip) (*models.Clip, error)
	Update(ctx context.Context, c *models.Clip) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
