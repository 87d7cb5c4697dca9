package domain

import (
	"context"
	"testing"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockAdminRepo struct {
	byEmail  *models.Admin
	count    int64
	inserted *models.Admin
}

func (m *mockAdminRepo) List(ctx context.Context, p ports.ListParams) ([]models.Admin, int64, error) {
	return nil, 0, nil
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return nil, models.ErrNotFound
}

func (m *mockAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.byEmail != nil && m.byEmail.Email == email {
		return m.byEmail, nil
	}
	return nil, models.ErrNotFound
}

func (m *mockAdminRepo) Insert(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	a.ID = 1
	m.inserted = a
	return a, nil
}

func (m *mockAdminRepo) Update(ctx context.Context, a *models.Admin) error { return nil }
func (m *mockAdminRepo) Delete(ctx context.Context, id int64) error        { return nil }
func (m *mockAdminRepo) Count(ctx context.Context) (int64, error)          { return m.count, nil }

func testAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{
		ID:           7,
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: string(hash),
		Role:         models.RoleSuperadmin,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &mockAdminRepo{byEmail: testAdmin(t, "secret123")}
	svc := NewAuthService(repo, "test-secret")

	token, admin, err := svc.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, int64(7), admin.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockAdminRepo{byEmail: testAdmin(t, "secret123")}
	svc := NewAuthService(repo, "test-secret")

	_, _, err := svc.Login(context.Background(), "admin@example.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAdminRepo{}, "test-secret")

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	repo := &mockAdminRepo{byEmail: testAdmin(t, "secret123")}
	svc := NewAuthService(repo, "test-secret")

	token, _, err := svc.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.AdminID)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, models.RoleSuperadmin, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repo := &mockAdminRepo{byEmail: testAdmin(t, "secret123")}
	issuer := NewAuthService(repo, "secret-a")
	verifier := NewAuthService(repo, "secret-b")

	token, _, err := issuer.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(&mockAdminRepo{}, "test-secret")

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
}

func TestSeedCreatesSuperadminOnce(t *testing.T) {
	repo := &mockAdminRepo{}
	svc := NewAuthService(repo, "test-secret")

	require.NoError(t, svc.Seed(context.Background(), "boss@example.com", "bootpass"))
	require.NotNil(t, repo.inserted)
	require.Equal(t, models.RoleSuperadmin, repo.inserted.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.inserted.PasswordHash), []byte("bootpass")))
}

func TestSeedSkipsPopulatedTable(t *testing.T) {
	repo := &mockAdminRepo{count: 3}
	svc := NewAuthService(repo, "test-secret")

	require.NoError(t, svc.Seed(context.Background(), "boss@example.com", "bootpass"))
	require.Nil(t, repo.inserted)
}
