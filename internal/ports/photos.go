package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type PhotoRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Photo, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	Insert(ctx context.Context, ph *models.Photo) (*models.Photo, error)
	Update(ctx context.Context, ph *models.Photo) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
