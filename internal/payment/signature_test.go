package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Every settlement route must authenticate its caller: an order code is
// human-shareable, so a status callback that anyone can forge would settle
// orders for free.
func TestStatusWebhookSignatures(t *testing.T) {
	secret := "provider-secret"
	body := []byte(`{"order_code":"LP 123456","success":true}`)
	valid := signBody(secret, body)

	t.Run("vietqr", func(t *testing.T) {
		a := NewVietQRAdapter(nil, secret)
		assert.True(t, a.VerifySignature(body, valid))
		assert.False(t, a.VerifySignature(body, "deadbeef"))
		assert.False(t, a.VerifySignature(body, ""))
		assert.False(t, a.VerifySignature([]byte(`{"order_code":"LP 654321","success":true}`), valid))
	})

	t.Run("paypal", func(t *testing.T) {
		capture := []byte(`{"pay_order_id":"pp-1","status":"COMPLETED"}`)
		a := NewPayPalAdapter(nil, secret)
		assert.True(t, a.VerifySignature(capture, signBody(secret, capture)))
		assert.False(t, a.VerifySignature(capture, valid))
	})

	t.Run("no configured secret disables the check", func(t *testing.T) {
		assert.True(t, NewVietQRAdapter(nil, "").VerifySignature(body, ""))
		assert.True(t, NewPayPalAdapter(nil, "").VerifySignature(body, "anything"))
	})
}
