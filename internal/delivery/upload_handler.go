package delivery

import (
	"io"
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

// multipart bodies are capped well above the largest per-file limit so the
// real size checks stay in the upload service
const maxMultipartMemory = 64 << 20

type UploadHandler struct {
	files  ports.UploadRepository
	svc    ports.UploadService
	events ports.EventPublisher
	log    *logger.ZapLogger
}

func NewUploadHandler(files ports.UploadRepository, svc ports.UploadService, events ports.EventPublisher, log *logger.ZapLogger) *UploadHandler {
	return &UploadHandler{files: files, svc: svc, events: events, log: log}
}

// POST /api/upload
// Accepts one or many files under the "files" multipart field. The whole
// batch is validated before the first blob is written, so one bad file
// rejects everything.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "no files in request", http.StatusBadRequest)
		return
	}

	inputs := make([]ports.UploadInput, 0, len(headers))
	fe := fieldErrors{}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		in := ports.UploadInput{
			OriginalName: fh.Filename,
			DeclaredMime: fh.Header.Get("Content-Type"),
			Data:         data,
		}
		if err := h.svc.Validate(in); err != nil {
			fe[fh.Filename] = err.Error()
			continue
		}
		inputs = append(inputs, in)
	}
	if len(fe) > 0 {
		fe.write(w)
		return
	}

	created := make([]*models.UploadFile, 0, len(inputs))
	for _, in := range inputs {
		f, err := h.svc.Store(r.Context(), in)
		if err != nil {
			writeError(w, "store upload", err)
			return
		}
		created = append(created, f)
		h.events.Emit(ports.ChangeEvent{Kind: models.KindFiles, ID: f.ID, Action: ports.ActionCreated})
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "files uploaded",
		Fields:  map[string]any{"count": len(created)},
	})
	writeJSON(w, http.StatusCreated, created)
}

// GET /api/upload
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "kind")
	items, total, err := h.files.List(r.Context(), p)
	if err != nil {
		writeError(w, "list upload files", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/upload/{id} — the record plus whatever still references it.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	f, err := h.files.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get upload file", err)
		return
	}
	refs, err := h.files.RefsForFile(r.Context(), id)
	if err != nil {
		writeError(w, "get upload refs", err)
		return
	}
	if refs == nil {
		refs = []models.UploadRef{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"file": f,
		"refs": refs,
	})
}

// DELETE /api/upload/{id} — 409 while anything still references the file.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, "delete upload file", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindFiles, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}
