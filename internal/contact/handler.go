package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bengalspicy/rms/pkg/event"
)

const MaxBodyBytes = 1 << 20

// Handler handles HTTP requests for the contact form
type Handler struct {
	repo      MessageRepo
	publisher events.Publisher
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
}

type HandlerDeps struct {
	Repo      MessageRepo
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:      hd.Repo,
		publisher: hd.Publisher,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the contact form
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/contact", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Get("/", h.ListMessages)
		r.Post("/reply", h.Reply)
		r.Get("/{id}", h.GetMessage)
		r.Put("/{id}", h.SetStatus)
		r.Delete("/{id}", h.DeleteMessage)
	})
}

// Submit handles POST /api/contact. The message is persisted first; the admin
// notification and customer acknowledgment mails are queued afterwards and
// never affect the response.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Submit")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var msg Message
	if ok := h.decodePayload(w, r, log, &msg); !ok {
		return
	}

	if strings.TrimSpace(msg.FirstName) == "" ||
		strings.TrimSpace(msg.LastName) == "" ||
		strings.TrimSpace(msg.Email) == "" ||
		strings.TrimSpace(msg.Message) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "All fields required",
		})
		return
	}

	msg.BeforeCreate()

	if err := h.repo.Create(ctx, &msg); err != nil {
		log.Error("cannot create contact message", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Server error",
		})
		return
	}

	h.publishMail(ctx, log, event.MailRequestEvent{
		Kind:      event.MailKindAdminContact,
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
		Email:     msg.Email,
		Message:   msg.Message,
	})
	h.publishMail(ctx, log, event.MailRequestEvent{
		Kind:      event.MailKindCustomerAck,
		FirstName: msg.FirstName,
		Email:     msg.Email,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message received successfully",
	})
}

// Reply handles POST /api/contact/reply. It only queues a mail; nothing is
// persisted.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Reply")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload struct {
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
		Subject   string `json:"subject"`
		Message   string `json:"message"`
	}
	if ok := h.decodePayload(w, r, log, &payload); !ok {
		return
	}

	if strings.TrimSpace(payload.Email) == "" || strings.TrimSpace(payload.Message) == "" {
		respondMessage(w, http.StatusBadRequest, "Email and message are required")
		return
	}

	h.publishMail(ctx, log, event.MailRequestEvent{
		Kind:      event.MailKindCustomerReply,
		FirstName: payload.FirstName,
		Email:     payload.Email,
		Subject:   payload.Subject,
		Message:   payload.Message,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Reply queued successfully",
	})
}

// ListMessages handles GET /api/contact
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMessages")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	messages, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list contact messages", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not list messages")
		return
	}

	if messages == nil {
		messages = []*Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

// GetMessage handles GET /api/contact/{id}
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMessage")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	msg, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading contact message", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not get message")
		return
	}

	if msg == nil {
		respondMessage(w, http.StatusNotFound, "Message not found")
		return
	}

	respondJSON(w, http.StatusOK, msg)
}

// SetStatus handles PUT /api/contact/{id}
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetStatus")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if ok := h.decodePayload(w, r, log, &payload); !ok {
		return
	}
	if strings.TrimSpace(payload.Status) == "" {
		respondMessage(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := h.repo.SetStatus(ctx, id, payload.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Message not found")
			return
		}
		log.Error("cannot update message status", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not update message status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Status updated successfully",
	})
}

// DeleteMessage handles DELETE /api/contact/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMessage")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Message not found")
			return
		}
		log.Error("cannot delete contact message", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not delete message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message deleted successfully",
	})
}

// publishMail queues one mail request. Failures are logged and dropped; the
// submission already committed and mail is best-effort.
func (h *Handler) publishMail(ctx context.Context, log apt.Logger, evt event.MailRequestEvent) {
	if h.publisher == nil {
		return
	}

	evt.OccurredAt = time.Now()

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error("cannot marshal mail request event", "error", err, "kind", evt.Kind)
		return
	}
	if err := h.publisher.Publish(ctx, event.MailRequestsTopic, payload); err != nil {
		log.Error("cannot publish mail request event", "error", err, "kind", evt.Kind)
		return
	}
	log.Info("published mail request event", "kind", evt.Kind, "to", evt.Email)
}

// Helper methods

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		respondMessage(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr, "error", err)
		respondMessage(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, log apt.Logger, target interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		respondMessage(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		log.Debug("error decoding JSON", "error", err)
		respondMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"message": message})
}
