package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type ShowHandler struct {
	shows  ports.ShowRepository
	events ports.EventPublisher
	log    *logger.ZapLogger
}

func NewShowHandler(shows ports.ShowRepository, events ports.EventPublisher, log *logger.ZapLogger) *ShowHandler {
	return &ShowHandler{shows: shows, events: events, log: log}
}

type showInput struct {
	Venue    string `json:"venue"`
	City     string `json:"city"`
	Country  string `json:"country"`
	ShowDate string `json:"showDate"`
	Notes    string `json:"notes"`
}

func (in showInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "venue", in.Venue)
	checkDate(fe, "showDate", in.ShowDate, true)
	return fe
}

func (in showInput) model() *models.Show {
	return &models.Show{
		Venue:    in.Venue,
		City:     in.City,
		Country:  in.Country,
		ShowDate: in.ShowDate,
		Notes:    in.Notes,
	}
}

// GET /api/shows
func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "country")
	items, total, err := h.shows.List(r.Context(), p)
	if err != nil {
		writeError(w, "list shows", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/shows/{id}
func (h *ShowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get show", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// POST /api/shows
func (h *ShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in showInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	s, err := h.shows.Insert(r.Context(), in.model())
	if err != nil {
		writeError(w, "create show", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindShows, ID: s.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, s)
}

// PUT /api/shows/{id}
func (h *ShowHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in showInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	s := in.model()
	s.ID = id
	if err := h.shows.Update(r.Context(), s); err != nil {
		writeError(w, "update show", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindShows, ID: id, Action: ports.ActionUpdated})

	updated, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get show", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/shows/{id}
func (h *ShowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.shows.Delete(r.Context(), id); err != nil {
		writeError(w, "delete show", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindShows, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/shows/{id}/publish
func (h *ShowHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.shows.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle show publish", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindShows, ID: id, Action: publishAction(at)})
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
