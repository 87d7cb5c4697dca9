package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type TextHandler struct {
	texts  ports.TextRepository
	events ports.EventPublisher
	log    *logger.ZapLogger
}

func NewTextHandler(texts ports.TextRepository, events ports.EventPublisher, log *logger.ZapLogger) *TextHandler {
	return &TextHandler{texts: texts, events: events, log: log}
}

type textInput struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

func (in textInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	return fe
}

func (in textInput) model() *models.Text {
	slug := in.Slug
	if slug == "" {
		slug = models.Slugify(in.Title)
	}
	return &models.Text{
		Title:  in.Title,
		Slug:   slug,
		Author: in.Author,
		Body:   in.Body,
	}
}

// GET /api/texts
func (h *TextHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published")
	items, total, err := h.texts.List(r.Context(), p)
	if err != nil {
		writeError(w, "list texts", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/texts/{id}
func (h *TextHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := h.texts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get text", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// POST /api/texts
func (h *TextHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in textInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	t, err := h.texts.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create text", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindTexts, ID: t.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, t)
}

// PUT /api/texts/{id}
func (h *TextHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in textInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	t := in.model()
	t.ID = id
	if err := h.texts.Update(r.Context(), t); err != nil {
		writeError(w, "update text", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindTexts, ID: id, Action: ports.ActionUpdated})

	updated, err := h.texts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get text", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/texts/{id}
func (h *TextHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.texts.Delete(r.Context(), id); err != nil {
		writeError(w, "delete text", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindTexts, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/texts/{id}/publish
func (h *TextHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.texts.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle text publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindTexts, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
