package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware(t *testing.T) {
	var got Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ActorFrom(r.Context())
		called = true
	})

	t.Run("rejects requests without identity", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if called {
			t.Error("handler reached without identity")
		}
	})

	t.Run("resolves actor from headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "u1")
		req.Header.Set(HeaderUserEmail, "u1@example.com")
		req.Header.Set(HeaderUserRole, "admin")

		Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
		if got.ID != "u1" || got.Email != "u1@example.com" || !got.IsAdmin() {
			t.Errorf("actor = %+v", got)
		}
	})

	t.Run("unknown roles collapse to customer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "u2")
		req.Header.Set(HeaderUserRole, "superuser")

		Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
		if got.Role != RoleCustomer {
			t.Errorf("role = %s, want customer", got.Role)
		}
	})
}

func TestActorFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ActorFrom(req.Context()); ok {
		t.Error("expected no actor in a bare context")
	}
}
