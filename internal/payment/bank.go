package payment

import (
	"context"
	"regexp"

	"github.com/shopspring/decimal"

	"linkpulse-core/internal/service"
)

// orderCodePattern finds the order code inside a free-text transfer memo.
var orderCodePattern = regexp.MustCompile(`LP \d{6}`)

// BankNotification is the parsed payload from the bank-transfer mail parser.
type BankNotification struct {
	Content string          `json:"content" binding:"required"` // transfer memo, carries the order code
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	TxID    string          `json:"tx_id"`
}

// BankAdapter settles orders from incoming bank transfers. The transfer memo
// carries the order code; settlement is amount-matched, so a short transfer
// leaves the order live awaiting a top-up.
type BankAdapter struct {
	settler Settler
	secret  []byte
}

func NewBankAdapter(settler Settler, secret string) *BankAdapter {
	return &BankAdapter{settler: settler, secret: []byte(secret)}
}

// ExtractOrderCode pulls the first order code out of a transfer memo.
func ExtractOrderCode(content string) (string, bool) {
	code := orderCodePattern.FindString(content)
	return code, code != ""
}

// VerifySignature checks the HMAC-SHA256 hex signature over the raw body.
func (a *BankAdapter) VerifySignature(payload []byte, signature string) bool {
	return verifySignature(a.secret, payload, signature)
}

// HandleNotification settles the order named in the memo. Memos without an
// order code are dropped like any other unmatchable event.
func (a *BankAdapter) HandleNotification(ctx context.Context, n BankNotification) (*service.SettleResult, error) {
	code, ok := ExtractOrderCode(n.Content)
	if !ok || !n.Amount.IsPositive() {
		return &service.SettleResult{Outcome: service.OutcomeDropped}, nil
	}

	return a.settler.Settle(ctx, service.SettlementInput{
		OrderCode: code,
		Provider:  service.MethodQRCode,
		Amount:    n.Amount,
		Succeeded: true,
	})
}
