package orders

const (
	TopicOrderPlaced        = "order.placed"
	TopicOrderCancelled     = "order.cancelled"
	TopicOrderStatusChanged = "order.status.changed"
	TopicOTPIssued          = "profile.otp.issued"
)

// Partition key keeps every event of one order on the same partition so
// consumers see them in order.
func PartitionKey(id string) []byte { return []byte(id) }
