package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type TextRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Text, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Text, error)
	Insert(ctx context.Context, t *models.Text) (*models.Text, error)
	Update(ctx context.Context, t *models.Text) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
