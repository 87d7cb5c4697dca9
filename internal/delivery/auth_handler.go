package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type AuthHandler struct {
	auth   ports.AuthService
	admins ports.AdminRepository
	log    *logger.ZapLogger
}

func NewAuthHandler(auth ports.AuthService, admins ports.AdminRepository, log *logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		admins: admins,
		log:    log,
	}
}

// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	token, admin, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "login success",
		Fields:  map[string]any{"adminID": admin.ID},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"admin": admin,
	})
}

// GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	admin, err := h.admins.GetByID(r.Context(), claims.AdminID)
	if err != nil {
		writeError(w, "get current admin", err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}
