package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/auth"
	kafkax "github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/kafka"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
)

type OTPStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

// ProfileHandler issues and verifies one-time codes for sensitive profile
// actions. Mail delivery is fire-and-forget through the event stream.
type ProfileHandler struct {
	OTP      OTPStore
	Producer orders.Publisher
	Service  string
	Log      *slog.Logger
}

func (h *ProfileHandler) Register(r *chi.Mux) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Post("/otp", h.sendOTP)
		r.Post("/otp/verify", h.verifyOTP)
	})
}

func (h *ProfileHandler) sendOTP(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())
	if actor.Email == "" {
		writeMessage(w, http.StatusBadRequest, false, "no email on record")
		return
	}

	code, err := h.OTP.Issue(r.Context(), actor.Email)
	if err != nil {
		h.Log.Error("otp issue failed", "error", err, "email", actor.Email)
		writeError(w, err)
		return
	}

	if h.Producer != nil {
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventOTPIssued,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       middleware.GetReqID(r.Context()),
			CorrelationID: actor.Email,
			Payload:       kafkax.MustMarshal(orders.OTPIssuedPayload{Email: actor.Email, Code: code}),
		}
		h.Producer.Publish(orders.TopicOTPIssued, orders.PartitionKey(actor.Email), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOTPIssued)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeMessage(w, http.StatusOK, true, "OTP sent to email.")
}

type verifyOTPReq struct {
	Code string `json:"code"`
}

func (h *ProfileHandler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var req verifyOTPReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid json")
		return
	}

	if err := h.OTP.Verify(r.Context(), actor.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "OTP verified.")
}
