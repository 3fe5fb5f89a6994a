package events

import (
	"encoding/json"
	"time"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
)

// Event types published to the order topic.
const (
	TypeOrderPlaced        = "OrderPlaced"
	TypeOrderStatusChanged = "OrderStatusChanged"
	TypePaymentSettled     = "PaymentSettled"
	TypePaymentFailed      = "PaymentFailed"
	TypeOrderCancelled     = "OrderCancelled"
	TypeOrderRemoved       = "OrderRemoved"
)

// Envelope wraps every published event. The order id doubles as the
// partition key so one order's events stay in sequence.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	OrderID    string          `json:"order_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// StatusPayload describes a status transition.
type StatusPayload struct {
	Status        model.Status        `json:"status"`
	StatusState   model.StatusState   `json:"statusState"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus,omitempty"`
}

// PlacedPayload describes a freshly placed order.
type PlacedPayload struct {
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
}

// NewEnvelope builds an envelope for the given event type and payload.
// A nil payload is allowed for bare lifecycle markers.
func NewEnvelope(eventType string, orderID uuid.UUID, payload any) (Envelope, error) {
	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   "storefront-api",
		OrderID:    orderID.String(),
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, err
		}
		env.Payload = raw
	}

	return env, nil
}
