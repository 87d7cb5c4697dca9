package delivery

import (
	"fmt"
	"net/http"

	"github.com/Vovarama1992/backstage/internal/domain"
	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type DvdHandler struct {
	dvds ports.DvdRepository
	svc  *domain.DvdService
	log  *logger.ZapLogger
}

func NewDvdHandler(dvds ports.DvdRepository, svc *domain.DvdService, log *logger.ZapLogger) *DvdHandler {
	return &DvdHandler{dvds: dvds, svc: svc, log: log}
}

type dvdInput struct {
	Title    string              `json:"title"`
	Director string              `json:"director"`
	Label    string              `json:"label"`
	Year     string              `json:"year"`
	Region   string              `json:"region"`
	Notes    string              `json:"notes"`
	Cover    models.Ref          `json:"cover"`
	Tracks   []models.TrackInput `json:"tracks"`
}

func (in dvdInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkYear(fe, "year", in.Year)
	for i, t := range in.Tracks {
		if t.Title == "" {
			fe[fmt.Sprintf("tracks.%d.title", i)] = "is required"
		}
	}
	return fe
}

func (in dvdInput) model() *models.Dvd {
	d := &models.Dvd{
		Title:    in.Title,
		Director: in.Director,
		Label:    in.Label,
		Year:     in.Year,
		Region:   in.Region,
		Notes:    in.Notes,
		CoverID:  in.Cover.Ptr(),
		Tracks:   make([]models.DvdTrack, len(in.Tracks)),
	}
	for i, t := range in.Tracks {
		d.Tracks[i] = models.DvdTrack{
			ID:           t.ID,
			Title:        t.Title,
			DurationSecs: t.DurationSecs,
		}
	}
	return d
}

// GET /api/dvds
func (h *DvdHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "year")
	items, total, err := h.dvds.List(r.Context(), p)
	if err != nil {
		writeError(w, "list dvds", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/dvds/{id}
func (h *DvdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	d, err := h.dvds.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get dvd", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// POST /api/dvds
func (h *DvdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dvdInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	d, err := h.svc.Create(r.Context(), in.model())
	if err != nil {
		writeError(w, "create dvd", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "dvd created",
		Fields:  map[string]any{"id": d.ID, "tracks": len(d.Tracks)},
	})
	writeJSON(w, http.StatusCreated, d)
}

// PUT /api/dvds/{id}
func (h *DvdHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in dvdInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	d := in.model()
	d.ID = id
	updated, err := h.svc.Update(r.Context(), d)
	if err != nil {
		writeError(w, "update dvd", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/dvds/{id}
func (h *DvdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, "delete dvd", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/dvds/{id}/publish
func (h *DvdHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.svc.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle dvd publish", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
