package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// login response never says which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

type tokenClaims struct {
	AdminID int64  `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	admins ports.AdminRepository
	secret []byte
}

func NewAuthService(admins ports.AdminRepository, secret string) ports.AuthService {
	return &authService{
		admins: admins,
		secret: []byte(secret),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, admin, nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*ports.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}

	return &ports.Claims{
		AdminID: claims.AdminID,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}

// Seed creates the initial superadmin when the admins table is empty. A
// populated table makes this a no-op, so it is safe to run on every boot.
func (s *authService) Seed(ctx context.Context, email, password string) error {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if n > 0 || email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed hash: %w", err)
	}

	_, err = s.admins.Insert(ctx, &models.Admin{
		Email:        email,
		Name:         "Superadmin",
		PasswordHash: string(hash),
		Role:         models.RoleSuperadmin,
	})
	if err != nil {
		return fmt.Errorf("seed insert: %w", err)
	}
	return nil
}
