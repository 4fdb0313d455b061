package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/auth"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/products"
)

type ProductStore interface {
	Create(ctx context.Context, in products.Input) (*products.Product, error)
	List(ctx context.Context) ([]*products.Product, error)
	Update(ctx context.Context, id string, in products.Input) (*products.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Store ProductStore
	Log   *slog.Logger
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Route("/product", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/", h.list)
		r.Post("/add", h.add)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("list products failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "products": out})
}

func (h *ProductsHandler) add(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var in products.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid json")
		return
	}
	p, err := h.Store.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Product added",
		"product": p,
	})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var in products.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid json")
		return
	}
	p, err := h.Store.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product updated",
		"product": p,
	})
}

func (h *ProductsHandler) remove(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "Product deleted")
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok || !actor.IsAdmin() {
		writeError(w, orders.ErrAccessDenied)
		return false
	}
	return true
}
