package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/auth"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/otp"
)

type fakeOTPStore struct {
	issued map[string]string
}

func (f *fakeOTPStore) Issue(ctx context.Context, email string) (string, error) {
	if f.issued == nil {
		f.issued = map[string]string{}
	}
	f.issued[email] = "123456"
	return "123456", nil
}

func (f *fakeOTPStore) Verify(ctx context.Context, email, code string) error {
	if f.issued[email] != code {
		return otp.ErrInvalidCode
	}
	delete(f.issued, email)
	return nil
}

func TestProfileOTP(t *testing.T) {
	store := &fakeOTPStore{}
	r := NewRouter()
	h := &ProfileHandler{OTP: store, Service: "test", Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h.Register(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	withEmail := map[string]string{
		auth.HeaderUserID:    "alice",
		auth.HeaderUserEmail: "alice@example.com",
	}

	t.Run("issue requires an email on record", func(t *testing.T) {
		resp := doReq(t, http.MethodPost, srv.URL+"/profile/otp", "", asAlice)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("issue then verify consumes the code", func(t *testing.T) {
		resp := doReq(t, http.MethodPost, srv.URL+"/profile/otp", "", withEmail)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("issue: status = %d, want 200", resp.StatusCode)
		}

		resp = doReq(t, http.MethodPost, srv.URL+"/profile/otp/verify", `{"code":"123456"}`, withEmail)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("verify: status = %d, want 200", resp.StatusCode)
		}

		// second use must fail
		resp = doReq(t, http.MethodPost, srv.URL+"/profile/otp/verify", `{"code":"123456"}`, withEmail)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("reuse: status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		if _, err := store.Issue(context.Background(), "alice@example.com"); err != nil {
			t.Fatal(err)
		}
		resp := doReq(t, http.MethodPost, srv.URL+"/profile/otp/verify", `{"code":"000000"}`, withEmail)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}
