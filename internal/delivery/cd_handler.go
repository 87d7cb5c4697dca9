package delivery

import (
	"fmt"
	"net/http"

	"github.com/Vovarama1992/backstage/internal/domain"
	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type CdHandler struct {
	cds ports.CdRepository
	svc *domain.CdService
	log *logger.ZapLogger
}

func NewCdHandler(cds ports.CdRepository, svc *domain.CdService, log *logger.ZapLogger) *CdHandler {
	return &CdHandler{cds: cds, svc: svc, log: log}
}

var cdFormats = map[string]bool{
	"album": true, "single": true, "ep": true, "compilation": true,
}

type cdInput struct {
	Title  string              `json:"title"`
	Artist string              `json:"artist"`
	Label  string              `json:"label"`
	Year   string              `json:"year"`
	Format string              `json:"format"`
	Notes  string              `json:"notes"`
	Cover  models.Ref          `json:"cover"`
	Tracks []models.TrackInput `json:"tracks"`
}

func (in cdInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "title", in.Title)
	checkYear(fe, "year", in.Year)
	if in.Format != "" && !cdFormats[in.Format] {
		fe["format"] = "must be one of album, single, ep, compilation"
	}
	for i, t := range in.Tracks {
		if t.Title == "" {
			fe[fmt.Sprintf("tracks.%d.title", i)] = "is required"
		}
	}
	return fe
}

func (in cdInput) model() *models.Cd {
	format := in.Format
	if format == "" {
		format = "album"
	}
	cd := &models.Cd{
		Title:   in.Title,
		Artist:  in.Artist,
		Label:   in.Label,
		Year:    in.Year,
		Format:  format,
		Notes:   in.Notes,
		CoverID: in.Cover.Ptr(),
		Tracks:  make([]models.CdTrack, len(in.Tracks)),
	}
	for i, t := range in.Tracks {
		cd.Tracks[i] = models.CdTrack{
			ID:           t.ID,
			Title:        t.Title,
			DurationSecs: t.DurationSecs,
			LyricID:      t.LyricID.Ptr(),
		}
	}
	return cd
}

// GET /api/cds
func (h *CdHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "published", "year", "format")
	items, total, err := h.cds.List(r.Context(), p)
	if err != nil {
		writeError(w, "list cds", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/cds/{id}
func (h *CdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	cd, err := h.cds.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get cd", err)
		return
	}
	writeJSON(w, http.StatusOK, cd)
}

// POST /api/cds
func (h *CdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in cdInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	cd, err := h.svc.Create(r.Context(), in.model())
	if err != nil {
		writeError(w, "create cd", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "cd created",
		Fields:  map[string]any{"id": cd.ID, "tracks": len(cd.Tracks)},
	})
	writeJSON(w, http.StatusCreated, cd)
}

// PUT /api/cds/{id}
func (h *CdHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in cdInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	cd := in.model()
	cd.ID = id
	updated, err := h.svc.Update(r.Context(), cd)
	if err != nil {
		writeError(w, "update cd", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/cds/{id}
func (h *CdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, "delete cd", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/cds/{id}/publish
func (h *CdHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.svc.TogglePublish(r.Context(), id)
	if err != nil {
		writeError(w, "toggle cd publish", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"publishedAt": at})
}
