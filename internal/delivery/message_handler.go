package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type MessageHandler struct {
	messages ports.MessageRepository
	events   ports.EventPublisher
	log      *logger.ZapLogger
}

func NewMessageHandler(messages ports.MessageRepository, events ports.EventPublisher, log *logger.ZapLogger) *MessageHandler {
	return &MessageHandler{messages: messages, events: events, log: log}
}

type messageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (in messageInput) validate() fieldErrors {
	fe := fieldErrors{}
	checkRequired(fe, "name", in.Name)
	checkEmail(fe, "email", in.Email)
	checkRequired(fe, "body", in.Body)
	return fe
}

// GET /api/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r, "read")
	items, total, err := h.messages.List(r.Context(), p)
	if err != nil {
		writeError(w, "list messages", err)
		return
	}
	writePage(w, r, items, p, total)
}

// GET /api/messages/{id}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	m, err := h.messages.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "get message", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// POST /api/messages — the public site's backend relays contact-form
// submissions here under its service token.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in messageInput
	if !decodeBody(w, r, &in) {
		return
	}
	if fe := in.validate(); len(fe) > 0 {
		fe.write(w)
		return
	}

	m, err := h.messages.Insert(r.Context(), &models.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	})
	if err != nil {
		writeError(w, "create message", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindMessages, ID: m.ID, Action: ports.ActionCreated})
	writeJSON(w, http.StatusCreated, m)
}

// DELETE /api/messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.messages.Delete(r.Context(), id); err != nil {
		writeError(w, "delete message", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindMessages, ID: id, Action: ports.ActionDeleted})
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/messages/{id}/read
func (h *MessageHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	at, err := h.messages.ToggleRead(r.Context(), id)
	if err != nil {
		writeError(w, "toggle message read", err)
		return
	}
	h.events.Emit(ports.ChangeEvent{Kind: models.KindMessages, ID: id, Action: ports.ActionUpdated})
	writeJSON(w, http.StatusOK, map[string]any{"readAt": at})
}
