package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

// DvdRepository mirrors CdRepository; dvd.Tracks follow the same
// reconciliation rules on Update.
type DvdRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Dvd, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Dvd, error)
	Insert(ctx context.Context, dvd *models.Dvd) (*models.Dvd, error)
	Update(ctx context.Context, dvd *models.Dvd) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
