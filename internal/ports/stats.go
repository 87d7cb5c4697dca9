package ports

import (
	"context"

	"github.com/Vovarama1992/backstage/internal/models"
)

type StatsRepository interface {
	Counts(ctx context.Context) (*models.Stats, error)
}
