package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

// Handler handles HTTP requests for the shopping cart
type Handler struct {
	repo   CartRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

type HandlerDeps struct {
	Repo CartRepo
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:   hd.Repo,
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the cart
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Post("/", h.AddEntry)
		r.Get("/", h.ListByEmail)
		r.Patch("/quantity/{id}", h.SetQuantity)
		r.Get("/{id}", h.GetEntry)
		r.Delete("/{id}", h.DeleteEntry)
	})
}

// AddEntry handles POST /cart
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddEntry")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	entry, ok := h.decodeEntryPayload(w, r, log)
	if !ok {
		return
	}

	if strings.TrimSpace(entry.CustomerEmail) == "" {
		respondMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	entry.BeforeCreate()

	if err := h.repo.Create(ctx, entry); err != nil {
		log.Error("cannot create cart entry", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not add to cart")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListByEmail handles GET /cart?email=
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListByEmail")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	email := r.URL.Query().Get("email")
	if email == "" {
		respondMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	entries, err := h.repo.ListByEmail(ctx, email)
	if err != nil {
		log.Error("cannot list cart entries", "error", err, "email", email)
		respondMessage(w, http.StatusInternalServerError, "Could not list cart entries")
		return
	}

	if entries == nil {
		entries = []*CartEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// SetQuantity handles PATCH /cart/quantity/{id}
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetQuantity")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if ok := h.decodePayload(w, r, log, &payload); !ok {
		return
	}
	if payload.Quantity == nil || *payload.Quantity < 0 {
		respondMessage(w, http.StatusBadRequest, "Quantity is required")
		return
	}

	if err := h.repo.SetQuantity(ctx, id, *payload.Quantity); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Cart entry not found")
			return
		}
		log.Error("cannot update cart quantity", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not update quantity")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Quantity updated successfully",
	})
}

// GetEntry handles GET /cart/{id}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetEntry")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	entry, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading cart entry", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not get cart entry")
		return
	}

	if entry == nil {
		respondMessage(w, http.StatusNotFound, "Cart entry not found")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /cart/{id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteEntry")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Cart entry not found")
			return
		}
		log.Error("cannot delete cart entry", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not delete cart entry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart entry deleted successfully",
	})
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

func (h *Handler) decodeEntryPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (*CartEntry, bool) {
	var entry CartEntry
	if ok := h.decodePayload(w, r, log, &entry); !ok {
		return nil, false
	}
	return &entry, true
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
