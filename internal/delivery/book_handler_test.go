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
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBookRepo struct {
	books       map[int64]*models.Book
	nextID      int64
	publishedAt *time.Time
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: map[int64]*models.Book{}}
}

func (m *mockBookRepo) List(ctx context.Context, p ports.ListParams) ([]models.Book, int64, error) {
	items := []models.Book{}
	for _, b := range m.books {
		items = append(items, *b)
	}
	return items, int64(len(items)), nil
}

func (m *mockBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return b, nil
}

func (m *mockBookRepo) Insert(ctx context.Context, b *models.Book) (*models.Book, error) {
	m.nextID++
	b.ID = m.nextID
	m.books[b.ID] = b
	return b, nil
}

func (m *mockBookRepo) Update(ctx context.Context, b *models.Book) error {
	if _, ok := m.books[b.ID]; !ok {
		return models.ErrNotFound
	}
	m.books[b.ID] = b
	return nil
}

func (m *mockBookRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.books[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *mockBookRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	if _, ok := m.books[id]; !ok {
		return nil, models.ErrNotFound
	}
	return m.publishedAt, nil
}

type noopUploads struct{}

func (noopUploads) Validate(in ports.UploadInput) error { return nil }
func (noopUploads) Store(ctx context.Context, in ports.UploadInput) (*models.UploadFile, error) {
	return nil, nil
}
func (noopUploads) Delete(ctx context.Context, id int64) error { return nil }
func (noopUploads) SyncRef(ctx context.Context, owner models.Owner, field string, fileID *int64) error {
	return nil
}
func (noopUploads) ReleaseOwner(ctx context.Context, owner models.Owner) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Emit(ev ports.ChangeEvent)        {}
func (nopPublisher) Events() <-chan ports.ChangeEvent { return nil }

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func bookRouter(repo *mockBookRepo) chi.Router {
	h := NewBookHandler(repo, noopUploads{}, nopPublisher{}, testLogger())
	r := chi.NewRouter()
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/publish", h.TogglePublish)
	})
	return r
}

func TestBookCreate(t *testing.T) {
	repo := newMockBookRepo()
	router := bookRouter(repo)

	body := `{"title": "Chronicles", "author": "Bob Dylan", "year": "2004", "cover": {"id": "3"}}`
	req := httptest.NewRequest("POST", "/api/books", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	require.Equal(t, "Chronicles", got.Title)
	require.NotNil(t, got.CoverID)
	require.Equal(t, int64(3), *got.CoverID)
}

func TestBookCreateValidation(t *testing.T) {
	router := bookRouter(newMockBookRepo())

	req := httptest.NewRequest("POST", "/api/books", bytes.NewBufferString(`{"year": "99"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Contains(t, out.Errors, "title")
	require.Contains(t, out.Errors, "year")
}

func TestBookGetNotFound(t *testing.T) {
	router := bookRouter(newMockBookRepo())

	req := httptest.NewRequest("GET", "/api/books/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookBadID(t *testing.T) {
	router := bookRouter(newMockBookRepo())

	req := httptest.NewRequest("GET", "/api/books/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookDelete(t *testing.T) {
	repo := newMockBookRepo()
	repo.books[1] = &models.Book{ID: 1, Title: "Tarantula"}
	repo.nextID = 1
	router := bookRouter(repo)

	req := httptest.NewRequest("DELETE", "/api/books/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, repo.books)
}

func TestBookTogglePublish(t *testing.T) {
	now := time.Now().UTC()
	repo := newMockBookRepo()
	repo.books[1] = &models.Book{ID: 1, Title: "Tarantula"}
	repo.publishedAt = &now
	router := bookRouter(repo)

	req := httptest.NewRequest("PATCH", "/api/books/1/publish", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		PublishedAt *time.Time `json:"publishedAt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out.PublishedAt)
}

func TestBookListEnvelopes(t *testing.T) {
	repo := newMockBookRepo()
	repo.books[1] = &models.Book{ID: 1, Title: "Tarantula"}
	router := bookRouter(repo)

	req := httptest.NewRequest("GET", "/api/books", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var modern map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modern))
	require.Contains(t, modern, "data")
	require.Contains(t, modern, "meta")

	req = httptest.NewRequest("GET", "/api/books?format=legacy", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var legacy map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &legacy))
	require.Contains(t, legacy, "results")
	require.Contains(t, legacy, "pagination")
}
