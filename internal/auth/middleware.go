package auth

import (
	"encoding/json"
	"net/http"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// Middleware resolves the gateway-verified actor identity from request
// headers and stores it in the request context. Requests without an
// identity are rejected before reaching any handler.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderUserID)
		if id == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "missing identity",
			})
			return
		}
		role := Role(r.Header.Get(HeaderUserRole))
		if role != RoleAdmin {
			role = RoleCustomer
		}
		a := Actor{
			ID:    id,
			Email: r.Header.Get(HeaderUserEmail),
			Role:  role,
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), a)))
	})
}
