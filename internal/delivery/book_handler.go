package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type BookHandler struct {
	books   ports.BookRepository
	uploads ports.UploadService
	events  ports.EventPublisher
	log     *logger.ZapLogger
}

func NewBookHandler(books ports.BookRepository, uploads ports.UploadService, events ports.EventPublisher, log *logger.ZapLogger) *BookHandler {
	return &BookHandler{books: books, uploads: uploads, events: events, log: log}
}

type bookInput struct {
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Publisher string     `json:"publisher"`
	Year      string     `json:"year"`
	ISBN      string     `json:"isbn"`
	Summary   string     `json:"summary"`
	Cover     models.Ref `json:"cover"`
}

func (in bookInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkYear(fe, "year", in.Year)
	return fe
}

func (in bookInput) model() *models.Book {
	return &models.Book{
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Year:      in.Year,
		ISBN:      in.ISBN,
		Summary:   in.Summary,
		CoverID:   in.Cover.Ptr(),
	}
}

// GET /api/books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "year")
	items, total, err := h.books.List(r.Context(), p)
	if err != nil {
		writeError(w, "list books", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get book", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// POST /api/books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in bookInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	b, err := h.books.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create book", err)
		return
	}
	owner := models.Owner{Kind: models.KindBooks, ID: b.ID}
	if err := h.uploads.SyncRef(r.Context(), owner, "cover", b.CoverID); err != nil {
		writeError(w, "attach book cover", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindBooks, ID: b.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, b)
}

// PUT /api/books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in bookInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	b := in.model()
	b.ID = id
	if err := h.books.Update(r.Context(), b); err != nil {
		writeError(w, "update book", err)
		return
	}
	owner := models.Owner{Kind: models.KindBooks, ID: id}
	if err := h.uploads.SyncRef(r.Context(), owner, "cover", b.CoverID); err != nil {
		writeError(w, "sync book cover", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindBooks, ID: id, Action: ports.ActionUpdated})

	updated, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get book", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.books.Delete(r.Context(), id); err != nil {
		writeError(w, "delete book", err)
		return
	}
	owner := models.Owner{Kind: models.KindBooks, ID: id}
	if err := h.uploads.ReleaseOwner(r.Context(), owner); err != nil {
		writeError(w, "release book files", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindBooks, ID: id, Action: ports.ActionDeleted})

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "book deleted",
		Fields:  map[string]any{"id": id},
	})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/books/{id}/publish
func (h *BookHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.books.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle book publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindBooks, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
