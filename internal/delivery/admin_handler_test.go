package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type mockAdminRepo struct {
	admins  map[int64]*models.Admin
	nextID  int64
	deleted []int64
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: map[int64]*models.Admin{}}
}

func (m *mockAdminRepo) List(ctx context.Context, p ports.ListParams) ([]models.Admin, int64, error) {
	return []models.Admin{}, 0, nil
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (m *mockAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockAdminRepo) Insert(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	m.nextID++
	a.ID = m.nextID
	m.admins[a.ID] = a
	return a, nil
}

func (m *mockAdminRepo) Update(ctx context.Context, a *models.Admin) error {
	m.admins[a.ID] = a
	return nil
}

func (m *mockAdminRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.admins, id)
	return nil
}

func (m *mockAdminRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

func adminRequest(method, target, body string, claims *ports.Claims) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	ctx := context.WithValue(req.Context(), claimsKey, claims)
	return req.WithContext(ctx)
}

func adminRouter(repo *mockAdminRepo) chi.Router {
	h := NewAdminHandler(repo, testLogger())
	r := chi.NewRouter()
	r.Route("/api/admins", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestAdminCreate(t *testing.T) {
	repo := newMockAdminRepo()
	router := adminRouter(repo)

	body := `{"email": "new@example.com", "name": "New", "password": "longenough"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest("POST", "/api/admins", body, &ports.Claims{AdminID: 1}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Admin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, models.RoleEditor, got.Role, "role defaults to editor")

	// the hash never leaks into the response
	require.NotContains(t, rec.Body.String(), repo.admins[got.ID].PasswordHash)
}

func TestAdminCreateValidation(t *testing.T) {
	router := adminRouter(newMockAdminRepo())

	body := `{"email": "bad", "password": "short", "role": "root"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest("POST", "/api/admins", body, &ports.Claims{AdminID: 1}))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Contains(t, out.Errors, "email")
	require.Contains(t, out.Errors, "password")
	require.Contains(t, out.Errors, "role")
}

func TestAdminUpdateKeepsHashWhenPasswordEmpty(t *testing.T) {
	repo := newMockAdminRepo()
	repo.admins[1] = &models.Admin{ID: 1, Email: "a@example.com", PasswordHash: "keep-me", Role: models.RoleEditor}
	repo.nextID = 1
	router := adminRouter(repo)

	body := `{"email": "a@example.com", "name": "Renamed"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest("PUT", "/api/admins/1", body, &ports.Claims{AdminID: 9}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "keep-me", repo.admins[1].PasswordHash)
	require.Equal(t, "Renamed", repo.admins[1].Name)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	repo := newMockAdminRepo()
	repo.admins[5] = &models.Admin{ID: 5, Email: "self@example.com"}
	router := adminRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest("DELETE", "/api/admins/5", "", &ports.Claims{AdminID: 5}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, repo.deleted)

	// a different admin can
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest("DELETE", "/api/admins/5", "", &ports.Claims{AdminID: 1}))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []int64{5}, repo.deleted)
}
