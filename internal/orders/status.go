package orders

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// ParseStatus validates a client-supplied status value. Transitions are
// deliberately unrestricted: an admin may move an order to any status,
// including backwards.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}
