package ports

import (
	"context"

	"github.com/Vovarama1992/backstage/internal/models"
)

type AdminRepository interface {
	List(ctx context.Context, p ListParams) ([]models.Admin, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Insert(ctx context.Context, a *models.Admin) (*models.Admin, error)
	Update(ctx context.Context, a *models.Admin) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
