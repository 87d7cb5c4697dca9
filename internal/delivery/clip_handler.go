package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type ClipHandler struct {
	clips   ports.ClipRepository
	uploads ports.UploadService
	events  ports.EventPublisher
	log     *logger.ZapLogger
}

func NewClipHandler(clips ports.ClipRepository, uploads ports.UploadService, events ports.EventPublisher, log *logger.ZapLogger) *ClipHandler {
	return &ClipHandler{clips: clips, uploads: uploads, events: events, log: log}
}

type clipInput struct {
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Year    string     `json:"year"`
	Summary string     `json:"summary"`
	Still   models.Ref `json:"still"`
}

func (in clipInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkHTTPURL(fe, "url", in.URL)
	checkYear(fe, "year", in.Year)
	return fe
}

func (in clipInput) model() *models.Clip {
	return &models.Clip{
		Title:   in.Title,
		URL:     in.URL,
		Year:    in.Year,
		Summary: in.Summary,
		StillID: in.Still.Ptr(),
	}
}

// GET /api/clips
func (h *ClipHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "year")
	items, total, err := h.clips.List(r.Context(), p)
	if err != nil {
		writeError(w, "list clips", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/clips/{id}
func (h *ClipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.clips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get clip", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /api/clips
func (h *ClipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in clipInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	c, err := h.clips.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create clip", err)
		return
	}
	owner := models.Owner{Kind: models.KindClips, ID: c.ID}
	if err := h.uploads.SyncRef(r.Context(), owner, "still", c.StillID); err != nil {
		writeError(w, "attach clip still", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindClips, ID: c.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, c)
}

// PUT /api/clips/{id}
func (h *ClipHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in clipInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	c := in.model()
	c.ID = id
	if err := h.clips.Update(r.Context(), c); err != nil {
		writeError(w, "update clip", err)
		return
	}
	owner := models.Owner{Kind: models.KindClips, ID: id}
	if err := h.uploads.SyncRef(r.Context(), owner, "still", c.StillID); err != nil {
		writeError(w, "sync clip still", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindClips, ID: id, Action: ports.ActionUpdated})

	updated, err := h.clips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get clip", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/clips/{id}
func (h *ClipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.clips.Delete(r.Context(), id); err != nil {
		writeError(w, "delete clip", err)
		return
	}
	owner := models.Owner{Kind: models.KindClips, ID: id}
	if err := h.uploads.ReleaseOwner(r.Context(), owner); err != nil {
		writeError(w, "release clip files", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindClips, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/clips/{id}/publish
func (h *ClipHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.clips.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle clip publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindClips, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
