package payment

import (
	"context"

	"linkpulse-core/internal/service"
)

// PayPalCaptureStatusCompleted is the capture status PayPal reports on
// successful settlement; anything else fails the order.
const PayPalCaptureStatusCompleted = "COMPLETED"

// PayPalCapture is the capture result relayed by the PayPal return flow.
type PayPalCapture struct {
	PayOrderID string `json:"pay_order_id" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

// PayPalAdapter settles by capture status. PayPal purchases also grant the
// time-boxed subscription, so settlement extends the user's expiry.
type PayPalAdapter struct {
	settler Settler
	secret  []byte
}

func NewPayPalAdapter(settler Settler, secret string) *PayPalAdapter {
	return &PayPalAdapter{settler: settler, secret: []byte(secret)}
}

// VerifySignature checks the HMAC-SHA256 hex signature over the raw body.
// A capture callback anyone can forge would settle orders, so the route
// rejects unsigned payloads before they reach the settlement path.
func (a *PayPalAdapter) VerifySignature(payload []byte, signature string) bool {
	return verifySignature(a.secret, payload, signature)
}

func (a *PayPalAdapter) HandleCapture(ctx context.Context, c PayPalCapture) (*service.SettleResult, error) {
	return a.settler.Settle(ctx, service.SettlementInput{
		PayOrderID:         c.PayOrderID,
		Provider:           service.MethodPayPal,
		Succeeded:          c.Status == PayPalCaptureStatusCompleted,
		GrantsSubscription: true,
	})
}
