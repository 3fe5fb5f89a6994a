package model

// Status is the canonical order status. It is the single source of truth;
// the UI severity tag is derived from it on read, never stored.
type Status string

const (
	StatusOrderPlaced    Status = "Order Placed"
	StatusPacking        Status = "Packing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancel         Status = "Cancel"

	// Gateway-driven statuses preceding fulfilment.
	StatusAwaitingPayment Status = "Awaiting Payment"
	StatusPaid            Status = "Paid"
	StatusPaymentFailed   Status = "Payment Failed"
	StatusCancelled       Status = "Cancelled"
)

var knownStatuses = map[Status]bool{
	StatusOrderPlaced:     true,
	StatusPacking:         true,
	StatusShipped:         true,
	StatusOutForDelivery:  true,
	StatusDelivered:       true,
	StatusCancel:          true,
	StatusAwaitingPayment: true,
	StatusPaid:            true,
	StatusPaymentFailed:   true,
	StatusCancelled:       true,
}

// IsValid reports whether s is one of the known status literals.
func (s Status) IsValid() bool {
	return knownStatuses[s]
}

// StatusState is the coarse severity class shown by the admin and
// customer UIs.
type StatusState string

const (
	StateInfo    StatusState = "info"
	StateSuccess StatusState = "success"
	StateError   StatusState = "error"
)

// State derives the severity tag for a status.
func (s Status) State() StatusState {
	switch s {
	case StatusCancel, StatusCancelled, StatusPaymentFailed:
		return StateError
	case StatusDelivered, StatusPaid:
		return StateSuccess
	default:
		return StateInfo
	}
}

// PaymentStatus tracks gateway-mediated payment progress. The legacy
// `payment` boolean is a projection of this value (see Order.Paid).
type PaymentStatus string

const (
	PaymentNone      PaymentStatus = ""
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)
