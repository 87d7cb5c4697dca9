package ports

import (
	"context"

	"github.com/Vovarama1992/backstage/internal/models"
)

// Claims is what a validated token carries through request context.
type Claims struct {
	AdminID int64
	Email   string
	Role    string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.Admin, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)

	// Seed creates the initial superadmin when the admins table is empty.
	Seed(ctx context.Context, email, password string) error
}
