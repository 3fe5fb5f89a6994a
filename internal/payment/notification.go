package payment

import (
	"crypto/sha512"
	"encoding/hex"
)

// Notification is the gateway's webhook payload. The same shape comes
// back from the Core API status endpoint.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id,omitempty"`
	TransactionTime   string `json:"transaction_time,omitempty"`
}

// Signature computes the expected webhook signature: the SHA-512 hex
// digest of order_id + status_code + gross_amount + server key.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks the payload's signature_key against the digest
// recomputed with the server key. Anything that does not match is
// treated as a forgery attempt.
func (n *Notification) VerifySignature(serverKey string) bool {
	return Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey) == n.SignatureKey
}
