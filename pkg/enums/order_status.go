package enums

import "fmt"

// OrderStatus tracks the delivery lifecycle of a marketplace order.
//
// Values mirror the content API's deliver_follow field verbatim, spaces
// included, so decoded orders can round-trip through write calls unchanged.
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in progress"
	OrderStatusOnHold     OrderStatus = "on hold"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusBeached    OrderStatus = "beached"
	OrderStatusRefunded   OrderStatus = "refunded"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusInProgress,
	OrderStatusOnHold,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCanceled,
	OrderStatusBeached,
	OrderStatusRefunded,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
