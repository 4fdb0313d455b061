package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/auth"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
)

type OrderService interface {
	Place(ctx context.Context, actor auth.Actor, in orders.PlaceInput) (*orders.Order, error)
	Cancel(ctx context.Context, actor auth.Actor, orderID string) error
	ListMine(ctx context.Context, actor auth.Actor) ([]*orders.Order, error)
	ListAll(ctx context.Context, actor auth.Actor) ([]*orders.Order, error)
	SetStatus(ctx context.Context, actor auth.Actor, orderID, status string) (*orders.Order, error)
	GetAnalytics(ctx context.Context, actor auth.Actor) (*orders.Analytics, error)
}

type OrdersHandler struct {
	Service OrderService
	Log     *slog.Logger
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/order", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Post("/", h.placeOrder)
		r.Get("/my", h.myOrders)
		r.Get("/", h.allOrders)
		r.Get("/analytics", h.analytics)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}/cancel", h.cancelOrder)
	})
}

type placeOrderReq struct {
	Products []orders.LineInput `json:"products"`
	Notes    string             `json:"notes"`
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid json")
		return
	}

	o, err := h.Service.Place(r.Context(), actor, orders.PlaceInput{
		Lines: req.Products,
		Notes: req.Notes,
	})
	if err != nil {
		countRejection(err)
		writeError(w, err)
		return
	}

	ordersPlaced.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Order placed",
		"order":   o,
	})
}

func (h *OrdersHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())
	orderID := chi.URLParam(r, "id")

	if err := h.Service.Cancel(r.Context(), actor, orderID); err != nil {
		writeError(w, err)
		return
	}

	ordersCancelled.Inc()
	writeMessage(w, http.StatusOK, true, "Order cancelled. Stock has been restored.")
}

func (h *OrdersHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	out, err := h.Service.ListMine(r.Context(), actor)
	if err != nil {
		h.Log.Error("list own orders failed", "error", err, "customer_id", actor.ID)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": out})
}

func (h *OrdersHandler) allOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	out, err := h.Service.ListAll(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": out})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())
	orderID := chi.URLParam(r, "id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid json")
		return
	}

	o, err := h.Service.SetStatus(r.Context(), actor, orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Status updated",
		"order":   o,
	})
}

func (h *OrdersHandler) analytics(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	a, err := h.Service.GetAnalytics(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analytics": a})
}

func countRejection(err error) {
	var (
		pnf   *orders.ProductNotFoundError
		stock *orders.InsufficientStockError
	)
	switch {
	case errors.Is(err, orders.ErrNoProductsSelected):
		ordersRejected.WithLabelValues("no_products").Inc()
	case errors.Is(err, orders.ErrInvalidQuantity):
		ordersRejected.WithLabelValues("invalid_quantity").Inc()
	case errors.As(err, &pnf):
		ordersRejected.WithLabelValues("product_not_found").Inc()
	case errors.As(err, &stock):
		ordersRejected.WithLabelValues("insufficient_stock").Inc()
	}
}
