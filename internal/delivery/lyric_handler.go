package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type LyricHandler struct {
	lyrics ports.LyricRepository
	events ports.EventPublisher
	log    *logger.ZapLogger
}

func NewLyricHandler(lyrics ports.LyricRepository, events ports.EventPublisher, log *logger.ZapLogger) *LyricHandler {
	return &LyricHandler{lyrics: lyrics, events: events, log: log}
}

type lyricInput struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Year    string `json:"year"`
	Credits string `json:"credits"`
}

func (in lyricInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkYear(fe, "year", in.Year)
	return fe
}

func (in lyricInput) model() *models.Lyric {
	return &models.Lyric{
		Title:   in.Title,
		Body:    in.Body,
		Year:    in.Year,
		Credits: in.Credits,
	}
}

// GET /api/lyrics
func (h *LyricHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "year")
	items, total, err := h.lyrics.List(r.Context(), p)
	if err != nil {
		writeError(w, "list lyrics", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/lyrics/{id}
func (h *LyricHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	l, err := h.lyrics.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get lyric", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// POST /api/lyrics
func (h *LyricHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in lyricInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	l, err := h.lyrics.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create lyric", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindLyrics, ID: l.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, l)
}

// PUT /api/lyrics/{id}
func (h *LyricHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in lyricInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	l := in.model()
	l.ID = id
	if err := h.lyrics.Update(r.Context(), l); err != nil {
		writeError(w, "update lyric", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindLyrics, ID: id, Action: ports.ActionUpdated})

	updated, err := h.lyrics.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get lyric", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/lyrics/{id}
func (h *LyricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.lyrics.Delete(r.Context(), id); err != nil {
		writeError(w, "delete lyric", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindLyrics, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/lyrics/{id}/publish
func (h *LyricHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.lyrics.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle lyric publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindLyrics, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
