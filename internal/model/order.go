package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NoSize is the sentinel used for products without size variants.
const NoSize = "No Size"

// Order represents one checkout transaction. Line items and the address
// are frozen snapshots taken at order time, not live references.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userID"`
	Items         []OrderItem   `json:"items"`
	Amount        int64         `json:"amount"`
	Address       Address       `json:"address"`
	Status        Status        `json:"status"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`

	// Gateway correlation fields, set once a remote transaction exists.
	GatewayOrderID    string     `json:"gatewayOrderId,omitempty"`
	SnapToken         string     `json:"snapToken,omitempty"`
	TransactionStatus string     `json:"transactionStatus,omitempty"`
	FraudStatus       string     `json:"fraudStatus,omitempty"`
	PaymentType       string     `json:"paymentType,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	ExpiredAt         *time.Time `json:"expiredAt,omitempty"`

	PlacedAt time.Time `json:"date"`
}

// Paid projects the legacy `payment` boolean from the canonical
// payment status.
func (o Order) Paid() bool {
	return o.PaymentStatus == PaymentPaid
}

// MarshalJSON serializes the order with the derived `payment` and
// `statusState` fields the original API exposed as stored columns.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Payment     bool        `json:"payment"`
		StatusState StatusState `json:"statusState"`
	}{
		alias:       alias(o),
		Payment:     o.Paid(),
		StatusState: o.Status.State(),
	})
}

// OrderItem is a denormalized product snapshot inside an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Image     string `json:"image,omitempty"`
}

// UnmarshalJSON accepts the legacy misspelled quantity key (`quanitity`)
// and the legacy `_id` product reference still present in old order
// documents, normalizing both to the canonical fields.
func (it *OrderItem) UnmarshalJSON(data []byte) error {
	type alias OrderItem
	aux := struct {
		*alias
		LegacyQuantity int    `json:"quanitity"`
		LegacyID       string `json:"_id"`
	}{alias: (*alias)(it)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if it.Quantity == 0 && aux.LegacyQuantity != 0 {
		it.Quantity = aux.LegacyQuantity
	}
	if it.ProductID == "" && aux.LegacyID != "" {
		it.ProductID = aux.LegacyID
	}
	return nil
}

// Address is the shipping address snapshot captured at checkout.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PlaceOrderRequest is the body of POST /api/order/place. The buyer is
// derived from the auth context, never from the body.
type PlaceOrderRequest struct {
	Items   []OrderItem `json:"items"`
	Amount  int64       `json:"amount"`
	Address Address     `json:"address"`
}

// UpdateStatusRequest is the body of POST /api/order/status. The
// statusState field is accepted for wire compatibility but ignored;
// the severity is always derived from the status.
type UpdateStatusRequest struct {
	OrderID     uuid.UUID `json:"orderId"`
	Status      Status    `json:"status"`
	StatusState string    `json:"statusState,omitempty"`
}
