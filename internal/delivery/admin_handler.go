package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	admins ports.AdminRepository
	log    *logger.ZapLogger
}

func NewAdminHandler(admins ports.AdminRepository, log *logger.ZapLogger) *AdminHandler {
	return &AdminHandler{admins: admins, log: log}
}

type adminInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (in adminInput) validate(passwordRequired bool) fieldErrors {
	fe := fieldErrors{}
	checkEmail(fe, "email", in.Email)
	if passwordRequired && in.Password == "" {
		fe["password"] = "is required"
	}
	if in.Password != "" && len(in.Password) < 8 {
		fe["password"] = "must be at least 8 characters"
	}
	if in.Role != "" && in.Role != models.RoleEditor && in.Role != models.RoleSuperadmin {
		fe["role"] = "must be editor or superadmin"
	}
	return fe
}

// GET /api/admins
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "role")
	items, total, err := h.admins.List(r.Context(), p)
	if err != nil {
		writeError(w, "list admins", err)
		return
	}
	writePage(w, r, items, p, total)
}

// POST /api/admins
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in adminInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(true); len(fe) > 0 {
		fe.write(w)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "hash password", err)
		return
	}
	role := in.Role
	if role == "" {
		role = models.RoleEditor
	}

	a, err := h.admins.Insert(r.Context(), &models.Admin{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		writeError(w, "create admin", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "admin created",
		Fields:  map[string]any{"id": a.ID, "role": a.Role},
	})
	writeJSON(w, http.StatusCreated, a)
}

// PUT /api/admins/{id} — empty password keeps the current hash.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in adminInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(false); len(fe) > 0 {
		fe.write(w)
		return
	}

	a, err := h.admins.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get admin", err)
		return
	}

	a.Email = in.Email
	a.Name = in.Name
	if in.Role != "" {
		a.Role = in.Role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, "hash password", err)
			return
		}
		a.PasswordHash = string(hash)
	}

	if err := h.admins.Update(r.Context(), a); err != nil {
		writeError(w, "update admin", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DELETE /api/admins/{id} — an admin cannot delete their own account.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	claims := ClaimsFrom(r.Context())
	if claims != nil && claims.AdminID == id {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := h.admins.Delete(r.Context(), id); err != nil {
		writeError(w, "delete admin", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "admin deleted",
		Fields:  map[string]any{"id": id},
	})
	w.WriteHeader(http.StatusNoContent)
}
