package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
)

type LyricRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Lyric, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Lyric, error)
	Insert(ctx context.Context, l *models.Lyric) (*models.Lyric, error)
	Update(ctx context.Context, l *models.Lyric) error
	Delete(ctx context.Context, id int64) error
	TogglePublish(ctx context.Context, id int64) (*time.Time, error)
}
