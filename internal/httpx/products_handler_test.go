package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/products"
)

type fakeProductStore struct {
	created *products.Input
	delErr  error
}

func (f *fakeProductStore) Create(ctx context.Context, in products.Input) (*products.Product, error) {
	f.created = &in
	return &products.Product{ID: "p1", Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
}

func (f *fakeProductStore) List(ctx context.Context) ([]*products.Product, error) {
	return []*products.Product{{ID: "p1", Name: "x", Price: decimal.NewFromInt(5), Stock: 10}}, nil
}

func (f *fakeProductStore) Update(ctx context.Context, id string, in products.Input) (*products.Product, error) {
	return &products.Product{ID: id, Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	return f.delErr
}

func newProductServer(f *fakeProductStore) *httptest.Server {
	r := NewRouter()
	h := &ProductsHandler{Store: f, Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h.Register(r)
	return httptest.NewServer(r)
}

func TestProductEndpoints(t *testing.T) {
	t.Run("any actor may list", func(t *testing.T) {
		srv := newProductServer(&fakeProductStore{})
		defer srv.Close()

		resp := doReq(t, http.MethodGet, srv.URL+"/product", "", asAlice)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("mutations are admin only", func(t *testing.T) {
		f := &fakeProductStore{}
		srv := newProductServer(f)
		defer srv.Close()

		body := `{"name":"y","category":"Car","supplier":"SF","price":"4800","stock":3}`

		resp := doReq(t, http.MethodPost, srv.URL+"/product/add", body, asAlice)
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("customer add: status = %d, want 403", resp.StatusCode)
		}
		if f.created != nil {
			t.Fatal("store reached despite denied request")
		}

		resp = doReq(t, http.MethodPost, srv.URL+"/product/add", body, asAdmin)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("admin add: status = %d, want 201", resp.StatusCode)
		}
		if f.created == nil || f.created.Name != "y" || f.created.Stock != 3 {
			t.Errorf("created = %+v", f.created)
		}
	})

	t.Run("delete missing product is 404", func(t *testing.T) {
		srv := newProductServer(&fakeProductStore{delErr: products.ErrNotFound})
		defer srv.Close()

		resp := doReq(t, http.MethodDelete, srv.URL+"/product/nope", "", asAdmin)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}
