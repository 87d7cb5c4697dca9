package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type ShowRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Show, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Show, error)
	Insert(ctx context.Context, s *models.Show) (*models.Show, error)
	Update(ctx context.Context, s *models.Show) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
