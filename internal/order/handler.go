package order

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

// Handler handles HTTP requests for orders and checkout
type Handler struct {
	orderRepo OrderRepo
	checkout  CheckoutStore
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
}

type HandlerDeps struct {
	OrderRepo OrderRepo
	Checkout  CheckoutStore
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		orderRepo: hd.OrderRepo,
		checkout:  hd.Checkout,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers checkout and order routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}", h.SetStatus)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

// Checkout handles POST /checkout. It builds the order document and hands it
// to the checkout store, which inserts the order and clears the customer's
// cart in one transaction.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Checkout")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req CheckoutRequest
	if ok := h.decodePayload(w, r, log, &req); !ok {
		return
	}

	if strings.TrimSpace(req.CustomerEmail) == "" || len(req.Items) == 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid order data",
		})
		return
	}

	o := NewOrder(&req)

	if err := h.checkout.PlaceOrder(ctx, o); err != nil {
		log.Error("checkout failed", "error", err, "email", req.CustomerEmail)
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Checkout failed",
		})
		return
	}

	log.Info("order placed", "order_id", o.ID.String(), "email", o.CustomerEmail)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order placed successfully",
		"orderId": o.ID,
	})
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	orders, err := h.orderRepo.List(ctx)
	if err != nil {
		log.Error("cannot list orders", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not list orders")
		return
	}

	if orders == nil {
		orders = []*Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not get order")
		return
	}

	if o == nil {
		respondMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// SetStatus handles PATCH /orders/{id}. Any caller-supplied status string is
// accepted; there is no enforced state machine.
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

	if err := h.orderRepo.SetStatus(ctx, id, payload.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error("cannot update order status", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not update order status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
	})
}

// DeleteOrder handles DELETE /orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error("cannot delete order", "error", err, "id", id.String())
		respondMessage(w, http.StatusInternalServerError, "Could not delete order")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order deleted successfully",
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
