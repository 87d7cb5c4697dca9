package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type mockTextRepo struct {
	texts  map[int64]*models.Text
	nextID int64
}

func newMockTextRepo() *mockTextRepo {
	return &mockTextRepo{texts: map[int64]*models.Text{}}
}

func (m *mockTextRepo) List(ctx context.Context, p ports.ListParams) ([]models.Text, int64, error) {
	return []models.Text{}, 0, nil
}

func (m *mockTextRepo) GetByID(ctx context.Context, id int64) (*models.Text, error) {
	t, ok := m.texts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

func (m *mockTextRepo) Insert(ctx context.Context, t *models.Text) (*models.Text, error) {
	for _, cur := range m.texts {
		if cur.Slug == t.Slug {
			return nil, models.ErrConflict
		}
	}
	m.nextID++
	t.ID = m.nextID
	m.texts[t.ID] = t
	return t, nil
}

func (m *mockTextRepo) Update(ctx context.Context, t *models.Text) error {
	if _, ok := m.texts[t.ID]; !ok {
		return models.ErrNotFound
	}
	m.texts[t.ID] = t
	return nil
}

func (m *mockTextRepo) Delete(ctx context.Context, id int64) error {
	delete(m.texts, id)
	return nil
}

func (m *mockTextRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return nil, nil
}

func textRouter(repo *mockTextRepo) chi.Router {
	h := NewTextHandler(repo, nopPublisher{}, testLogger())
	r := chi.NewRouter()
	r.Route("/api/texts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/publish", h.TogglePublish)
	})
	return r
}

func TestTextCreateDerivesSlug(t *testing.T) {
	repo := newMockTextRepo()
	router := textRouter(repo)

	body := `{"title": "Liner Notes, Vol. 1", "body": "..."}`
	req := httptest.NewRequest("POST", "/api/texts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Text
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "liner-notes-vol-1", got.Slug)
}

func TestTextCreateKeepsExplicitSlug(t *testing.T) {
	repo := newMockTextRepo()
	router := textRouter(repo)

	body := `{"title": "Liner Notes", "slug": "custom-slug"}`
	req := httptest.NewRequest("POST", "/api/texts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Text
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "custom-slug", got.Slug)
}

func TestTextCreateDuplicateSlug(t *testing.T) {
	repo := newMockTextRepo()
	router := textRouter(repo)

	body := `{"title": "Same Title"}`
	req := httptest.NewRequest("POST", "/api/texts", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest("POST", "/api/texts", bytes.NewBufferString(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}
