package menu

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

// Handler handles HTTP requests for the food menu
type Handler struct {
	repo   MenuItemRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

type HandlerDeps struct {
	Repo MenuItemRepo
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

// RegisterRoutes registers all routes for the food menu
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/food-menu", func(r chi.Router) {
		r.Post("/", h.CreateItem)
		r.Get("/", h.ListItems)
		r.Get("/{id}", h.GetItem)
		r.Patch("/{id}", h.PatchItem)
		r.Delete("/{id}", h.DeleteItem)
	})
}

// CreateItem handles POST /food-menu
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	item, ok := h.decodeItemPayload(w, r, log)
	if !ok {
		return
	}

	if strings.TrimSpace(item.Name) == "" {
		respondMessage(w, http.StatusBadRequest, "Name is required")
		return
	}

	item.BeforeCreate()

	if err := h.repo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// ListItems handles GET /food-menu
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	items, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list menu items", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not list menu items")
		return
	}

	if items == nil {
		items = []*MenuItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetItem handles GET /food-menu/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not get menu item")
		return
	}

	if item == nil {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// PatchItem handles PATCH /food-menu/{id}. The body is applied as a partial
// update; unknown fields pass through to the stored document.
func (h *Handler) PatchItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PatchItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	fields, ok := h.decodeFieldsPayload(w, r, log)
	if !ok {
		return
	}
	if len(fields) == 0 {
		respondMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.repo.Patch(ctx, id, fields); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Error("cannot update menu item", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu item updated successfully",
	})
}

// DeleteItem handles DELETE /food-menu/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Error("cannot delete menu item", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu item deleted successfully",
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

func (h *Handler) decodeItemPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (*MenuItem, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		respondMessage(w, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}

	var item MenuItem
	if err := json.Unmarshal(body, &item); err != nil {
		log.Debug("error decoding JSON", "error", err)
		respondMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, false
	}

	return &item, true
}

func (h *Handler) decodeFieldsPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		respondMessage(w, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Debug("error decoding JSON", "error", err)
		respondMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, false
	}

	// The document key is never client-writable.
	delete(fields, "_id")
	delete(fields, "id")

	return fields, true
}

// Responses follow the storefront's original wire contract (raw documents and
// {success, message} envelopes), so they are encoded directly.

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"message": message})
}
