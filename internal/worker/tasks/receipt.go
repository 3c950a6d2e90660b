package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"linkpulse-core/pkg/logger"
)

const (
	TypeReceiptDelivery = "receipt:deliver"
)

// ReceiptDeliveryPayload carries what the receipt email needs.
type ReceiptDeliveryPayload struct {
	DepositID uint64 `json:"deposit_id"`
	UserID    uint64 `json:"user_id"`
	OrderCode string `json:"order_code"`
	Points    int64  `json:"points"`
}

// ---------------------------------------------------------------------
// 1. Producer (Client) Code
// ---------------------------------------------------------------------

// NewReceiptDeliveryTask creates the post-settlement receipt task.
func NewReceiptDeliveryTask(depositID, userID uint64, orderCode string, points int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ReceiptDeliveryPayload{
		DepositID: depositID,
		UserID:    userID,
		OrderCode: orderCode,
		Points:    points,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReceiptDelivery, payload, asynq.MaxRetry(5), asynq.Timeout(10*time.Minute)), nil
}

// ---------------------------------------------------------------------
// 2. Consumer (Server) Code
// ---------------------------------------------------------------------

// HandleReceiptDeliveryTask renders and delivers the purchase receipt.
func HandleReceiptDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var p ReceiptDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that does not parse will not parse on retry either;
		// archive it for inspection.
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("delivering purchase receipt",
		zap.Uint64("user_id", p.UserID),
		zap.String("order_code", p.OrderCode),
		zap.Int64("points", p.Points),
	)

	// Mail delivery goes through the transactional mail provider here.

	return nil
}
