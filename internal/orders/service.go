package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/auth"
	kafkax "github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/kafka"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/redisx"
)

// Store is the persistence contract the service orchestrates. The pgx Repo
// implements it; tests substitute an in-memory store.
type Store interface {
	PlaceOrder(ctx context.Context, customerID string, in PlaceInput) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

type Publisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

// Service performs the authorization capability checks uniformly before any
// store operation, then publishes events and refreshes the status cache
// after commit. Producer and Redis are optional collaborators.
type Service struct {
	store    Store
	producer Publisher
	rdb      *redis.Client
	name     string
	log      *slog.Logger
}

func NewService(store Store, producer Publisher, rdb *redis.Client, serviceName string, logger *slog.Logger) *Service {
	return &Service{store: store, producer: producer, rdb: rdb, name: serviceName, log: logger}
}

// Place validates the request shape before touching storage; the store then
// validates stock under locks. Both failure classes leave no trace.
func (s *Service) Place(ctx context.Context, actor auth.Actor, in PlaceInput) (*Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrNoProductsSelected
	}
	for _, ln := range in.Lines {
		if ln.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	o, err := s.store.PlaceOrder(ctx, actor.ID, in)
	if err != nil {
		return nil, err
	}

	s.cacheStatus(ctx, o.ID, o.Status)
	s.publish(ctx, EventOrderPlaced, TopicOrderPlaced, o.ID, OrderPlacedPayload{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		Items:       toItemQtys(o.Items),
		TotalAmount: o.TotalAmount.String(),
	})
	s.log.Info("order placed",
		"order_id", o.ID, "customer_id", o.CustomerID,
		"items", len(o.Items), "total", o.TotalAmount.String())
	return o, nil
}

// Cancel authorizes against the order's owner, then lets the store restore
// stock and delete the order as one unit.
func (s *Service) Cancel(ctx context.Context, actor auth.Actor, orderID string) error {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o.CustomerID != actor.ID && !actor.IsAdmin() {
		return ErrAccessDenied
	}

	cancelled, err := s.store.CancelOrder(ctx, orderID)
	if err != nil {
		return err
	}

	s.dropStatus(ctx, orderID)
	s.publish(ctx, EventOrderCancelled, TopicOrderCancelled, orderID, OrderCancelledPayload{
		OrderID:    cancelled.ID,
		CustomerID: cancelled.CustomerID,
		Items:      toItemQtys(cancelled.Items),
	})
	s.log.Info("order cancelled", "order_id", orderID, "by", actor.ID)
	return nil
}

func (s *Service) ListMine(ctx context.Context, actor auth.Actor) ([]*Order, error) {
	return s.store.ListByCustomer(ctx, actor.ID)
}

func (s *Service) ListAll(ctx context.Context, actor auth.Actor) ([]*Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	return s.store.ListAll(ctx)
}

func (s *Service) SetStatus(ctx context.Context, actor auth.Actor, orderID, status string) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.store.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return nil, err
	}

	s.cacheStatus(ctx, o.ID, o.Status)
	s.publish(ctx, EventOrderStatusChanged, TopicOrderStatusChanged, o.ID, OrderStatusChangedPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
	})
	return o, nil
}

func (s *Service) GetAnalytics(ctx context.Context, actor auth.Actor) (*Analytics, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	return s.store.Analytics(ctx)
}

func (s *Service) publish(ctx context.Context, eventType, topic, correlationID string, payload any) {
	if s.producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.name,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: correlationID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.producer.Publish(topic, PartitionKey(correlationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) cacheStatus(ctx context.Context, orderID string, st Status) {
	if s.rdb == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = s.rdb.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, st), redisx.TTLStatusCache).Err()
}

func (s *Service) dropStatus(ctx context.Context, orderID string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, orderID)).Err()
}

func toItemQtys(items []OrderItem) []ItemQty {
	out := make([]ItemQty, 0, len(items))
	for _, it := range items {
		out = append(out, ItemQty{ProductID: it.ProductID, Qty: it.Quantity})
	}
	return out
}
