package payment

import (
	"context"

	"linkpulse-core/internal/service"
)

// VietQRCallback is the status callback from the VietQR gateway.
type VietQRCallback struct {
	OrderCode string `json:"order_code" binding:"required"`
	Success   bool   `json:"success"`
}

// VietQRAdapter settles by gateway status under the qrcode payment method.
type VietQRAdapter struct {
	settler Settler
	secret  []byte
}

func NewVietQRAdapter(settler Settler, secret string) *VietQRAdapter {
	return &VietQRAdapter{settler: settler, secret: []byte(secret)}
}

// VerifySignature checks the HMAC-SHA256 hex signature over the raw body.
// Order codes are human-shareable, so the callback must prove it came from
// the gateway, not from anyone who saw a code.
func (a *VietQRAdapter) VerifySignature(payload []byte, signature string) bool {
	return verifySignature(a.secret, payload, signature)
}

func (a *VietQRAdapter) HandleCallback(ctx context.Context, c VietQRCallback) (*service.SettleResult, error) {
	return a.settler.Settle(ctx, service.SettlementInput{
		OrderCode: c.OrderCode,
		Provider:  service.MethodQRCode,
		Succeeded: c.Success,
	})
}
