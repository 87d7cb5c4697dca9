package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type CdRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Cd, int64, error)

	// GetByID loads the CD with its ordered track list and resolved cover.
	GetByID(ctx context.Context, id int64) (*models.Cd, error)

	// Insert stores the CD row plus cd.Tracks in array order, in one
	// transaction.
	Insert(ctx context.Context, cd *models.Cd) (*models.Cd, error)

	// Update rewrites the CD row and reconciles cd.Tracks against the stored
	// sub-rows: matched ids update in place, id-less entries insert, stored
	// rows missing from cd.Tracks are deleted. One transaction.
	Update(ctx context.Context, cd *models.Cd) error

	// Delete removes the CD and its tracks.
	Delete(ctx context.Context, id int64) error

	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
