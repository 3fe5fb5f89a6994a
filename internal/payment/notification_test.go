package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	// Digest shape: SHA-512 hex of order_id + status_code + gross_amount + server key.
	sig := Signature("ORDER-1", "200", "350.00", "server-key")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Signature("ORDER-1", "200", "350.00", "server-key"))
	assert.NotEqual(t, sig, Signature("ORDER-2", "200", "350.00", "server-key"))
	assert.NotEqual(t, sig, Signature("ORDER-1", "200", "350.00", "other-key"))
}

func TestVerifySignature(t *testing.T) {
	n := &Notification{
		OrderID:     "ORDER-1",
		StatusCode:  "200",
		GrossAmount: "350.00",
	}

	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")
	assert.True(t, n.VerifySignature("server-key"))
	assert.False(t, n.VerifySignature("wrong-key"))

	n.SignatureKey = "deadbeef"
	assert.False(t, n.VerifySignature("server-key"))

	n.SignatureKey = ""
	assert.False(t, n.VerifySignature("server-key"))
}

func TestEnabledPayments(t *testing.T) {
	tests := []struct {
		method string
		want   []string
	}{
		{"QRIS", []string{"gopay", "qris"}},
		{"DANA", []string{"dana"}},
		{"GOPAY", []string{"gopay"}},
		{"SHOPEEPAY", []string{"shopeepay"}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, EnabledPayments(tt.method))
		})
	}

	t.Run("unknown methods get the full instrument list", func(t *testing.T) {
		full := EnabledPayments("Midtrans")
		assert.Len(t, full, 8)
		assert.Contains(t, full, "credit_card")
		assert.Contains(t, full, "qris")
		assert.Equal(t, full, EnabledPayments("COD"))
	})
}
