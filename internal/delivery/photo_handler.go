package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type PhotoHandler struct {
	photos  ports.PhotoRepository
	uploads ports.UploadService
	events  ports.EventPublisher
	log     *logger.ZapLogger
}

func NewPhotoHandler(photos ports.PhotoRepository, uploads ports.UploadService, events ports.EventPublisher, log *logger.ZapLogger) *PhotoHandler {
	return &PhotoHandler{photos: photos, uploads: uploads, events: events, log: log}
}

type photoInput struct {
	Title   string     `json:"title"`
	Caption string     `json:"caption"`
	Credit  string     `json:"credit"`
	Taken   string     `json:"taken"`
	Image   models.Ref `json:"image"`
}

func (in photoInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkDate(fe, "taken", in.Taken, false)
	return fe
}

func (in photoInput) model() *models.Photo {
	return &models.Photo{
		Title:   in.Title,
		Caption: in.Caption,
		Credit:  in.Credit,
		Taken:   in.Taken,
		ImageID: in.Image.Ptr(),
	}
}

// GET /api/photos
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published")
	items, total, err := h.photos.List(r.Context(), p)
	if err != nil {
		writeError(w, "list photos", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/photos/{id}
func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ph, err := h.photos.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get photo", err)
		return
	}
	writeJSON(w, http.StatusOK, ph)
}

// POST /api/photos
func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in photoInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	ph, err := h.photos.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create photo", err)
		return
	}
	owner := models.Owner{Kind: models.KindPhotos, ID: ph.ID}
	if err := h.uploads.SyncRef(r.Context(), owner, "image", ph.ImageID); err != nil {
		writeError(w, "attach photo image", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindPhotos, ID: ph.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, ph)
}

// PUT /api/photos/{id}
func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in photoInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	ph := in.model()
	ph.ID = id
	if err := h.photos.Update(r.Context(), ph); err != nil {
		writeError(w, "update photo", err)
		return
	}
	owner := models.Owner{Kind: models.KindPhotos, ID: id}
	if err := h.uploads.SyncRef(r.Context(), owner, "image", ph.ImageID); err != nil {
		writeError(w, "sync photo image", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindPhotos, ID: id, Action: ports.ActionUpdated})

	updated, err := h.photos.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get photo", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.photos.Delete(r.Context(), id); err != nil {
		writeError(w, "delete photo", err)
		return
	}
	owner := models.Owner{Kind: models.KindPhotos, ID: id}
	if err := h.uploads.ReleaseOwner(r.Context(), owner); err != nil {
		writeError(w, "release photo files", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindPhotos, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/photos/{id}/publish
func (h *PhotoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.photos.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle photo publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindPhotos, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
