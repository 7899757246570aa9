package user

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

// Handler handles HTTP requests for users
type Handler struct {
	repo   UserRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

type HandlerDeps struct {
	Repo UserRepo
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

// RegisterRoutes registers all routes for users
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.LoginOrRegister)
		r.Get("/", h.ListUsers)
		r.Patch("/role/{id}", h.SetRole)
		r.Get("/{id}", h.GetUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

// LoginOrRegister handles POST /users. Known emails get their activity
// refreshed and receive the pre-update snapshot back; unknown emails become a
// new customer. The repo does this in one conditional write, so two
// simultaneous first contacts cannot produce duplicate users.
func (h *Handler) LoginOrRegister(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.LoginOrRegister")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if ok := h.decodePayload(w, r, log, &payload); !ok {
		return
	}
	if strings.TrimSpace(payload.Email) == "" {
		respondMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	existing, insertedID, err := h.repo.LoginOrRegister(ctx, payload.Name, payload.Email)
	if err != nil {
		log.Error("cannot upsert user", "error", err, "email", payload.Email)
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if existing != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    existing,
		})
		return
	}

	log.Info("user registered", "user_id", insertedID.String(), "email", payload.Email)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"insertedId": insertedID,
	})
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListUsers")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	users, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list users", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not list users")
		return
	}

	if users == nil {
		users = []*User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	u, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading user", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not get user")
		return
	}

	if u == nil {
		respondMessage(w, http.StatusNotFound, "Customer not found")
		return
	}

	respondJSON(w, http.StatusOK, u)
}

// SetRole handles PATCH /users/role/{id}
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetRole")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var payload struct {
		Role string `json:"role"`
	}
	if ok := h.decodePayload(w, r, log, &payload); !ok {
		return
	}
	if strings.TrimSpace(payload.Role) == "" {
		respondMessage(w, http.StatusBadRequest, "Role is required")
		return
	}

	if err := h.repo.SetRole(ctx, id, payload.Role); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Error("cannot update role", "error", err, "id", id.String())
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to update role",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Role updated successfully",
	})
}

// DeleteUser handles DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Error("cannot delete user", "error", err, "id", id.String())
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to delete customer",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Customer deleted successfully",
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
