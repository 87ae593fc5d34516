package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// OrderStatusMeta carries the display and progression metadata for a status.
// Adding a status means adding one row here.
type OrderStatusMeta struct {
	Label    string
	Badge    string
	Next     OrderStatus
	Terminal bool
}

var orderStatusMeta = map[OrderStatus]OrderStatusMeta{
	OrderStatusPending:   {Label: "Pending", Badge: "yellow", Next: OrderStatusConfirmed},
	OrderStatusConfirmed: {Label: "Confirmed", Badge: "blue", Next: OrderStatusPreparing},
	OrderStatusPreparing: {Label: "Preparing", Badge: "orange", Next: OrderStatusReady},
	OrderStatusReady:     {Label: "Ready", Badge: "green", Next: OrderStatusCompleted},
	OrderStatusCompleted: {Label: "Completed", Badge: "gray", Terminal: true},
	OrderStatusCancelled: {Label: "Cancelled", Badge: "red", Terminal: true},
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

// Meta returns the metadata row for the status.
func (s OrderStatus) Meta() OrderStatusMeta {
	return orderStatusMeta[s]
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return orderStatusMeta[s].Terminal
}

// CanTransition reports whether the lifecycle permits moving from s to target.
// The happy path is strictly linear with no skipping; cancellation is allowed
// from any non-terminal state.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	return orderStatusMeta[s].Next == target
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
