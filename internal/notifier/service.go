package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/kafka"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/redisx"
)

// Mailer sends a plain-text message. Delivery is best effort; a failure is
// logged, never retried.
type Mailer interface {
	Send(to, subject, body string) error
}

// Service turns order and OTP events into notifications. Duplicate
// deliveries are dropped via a TTL'd Redis key per event id.
type Service struct {
	Redis  *redis.Client
	Mailer Mailer
	Log    *slog.Logger
}

func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
		if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	to, subject, body, err := Render(env)
	if err != nil {
		return err
	}
	if subject == "" {
		return nil // event type we do not notify on
	}

	s.Log.Info("notification", "event", env.EventType, "correlation_id", env.CorrelationID, "subject", subject)
	if s.Mailer != nil && to != "" {
		if err := s.Mailer.Send(to, subject, body); err != nil {
			s.Log.Error("mail send failed", "error", err, "to", to)
		}
	}
	return nil
}

// Render builds the notification for an event. The recipient is empty when
// the event does not carry an address; subject is empty for events that
// produce no notification.
func Render(env orders.Envelope) (to, subject, body string, err error) {
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return "", "", "", err
		}
		return "", "Order placed",
			fmt.Sprintf("Order %s placed for customer %s, total %s.", p.OrderID, p.CustomerID, p.TotalAmount), nil

	case orders.EventOrderCancelled:
		p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
		if err != nil {
			return "", "", "", err
		}
		return "", "Order cancelled",
			fmt.Sprintf("Order %s cancelled; stock restored for %d products.", p.OrderID, len(p.Items)), nil

	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return "", "", "", err
		}
		return "", "Order status updated",
			fmt.Sprintf("Order %s is now %s.", p.OrderID, p.Status), nil

	case orders.EventOTPIssued:
		p, err := kafkax.UnwrapPayload[orders.OTPIssuedPayload](env.Payload)
		if err != nil {
			return "", "", "", err
		}
		return p.Email, "Your one-time code",
			fmt.Sprintf("Your OTP is: %s", p.Code), nil
	}
	return "", "", "", nil
}
