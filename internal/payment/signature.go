package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// verifySignature checks an HMAC-SHA256 hex signature over the raw request
// body. An empty secret means signing is not configured for that provider and
// the check passes.
func verifySignature(secret, payload []byte, signature string) bool {
	if len(secret) == 0 {
		return true
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
