package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrderCode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"bare code", "LP 123456", "LP 123456", true},
		{"code inside a memo", "chuyen khoan LP 482913 cam on", "LP 482913", true},
		{"first of two codes wins", "LP 111111 then LP 222222", "LP 111111", true},
		{"too few digits", "LP 12345", "", false},
		{"missing space", "LP123456", "", false},
		{"no code at all", "thanks for the coffee", "", false},
		{"seven digits still matches the first six", "LP 1234567", "LP 123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractOrderCode(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"content":"LP 123456","amount":"250000"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	a := NewBankAdapter(nil, secret)
	assert.True(t, a.VerifySignature(body, valid))
	assert.False(t, a.VerifySignature(body, "deadbeef"))
	assert.False(t, a.VerifySignature([]byte("tampered"), valid))

	// No configured secret disables verification.
	open := NewBankAdapter(nil, "")
	assert.True(t, open.VerifySignature(body, "anything"))
}
