package models

// Order status values. The status field is a closed enumeration; handlers
// reject anything outside this set.
const (
	StatusPending        = "Pending"
	StatusAccepted       = "Accepted"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// statusTransitions is the allowed transition table. Delivered and
// Cancelled are terminal.
var statusTransitions = map[string][]string{
	StatusPending:        {StatusAccepted, StatusCancelled},
	StatusAccepted:       {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
