package event

// Topics for the outbox relay.
const (
	TopicDepositCompleted = "points_events_deposit"
	TopicPointsDebited    = "points_events_debit"
)

// DepositCompletedEvent is published after a deposit settles.
// Topic: points_events_deposit
type DepositCompletedEvent struct {
	DepositID uint64 `json:"deposit_id"`
	UserID    uint64 `json:"user_id"`
	OrderCode string `json:"order_code"`
	Provider  string `json:"provider"`
	Points    int64  `json:"points"`
	Amount    string `json:"amount"` // Decimal string
	Currency  string `json:"currency"`
}

// PointsDebitedEvent is published after a feature request charges points.
// Topic: points_events_debit
type PointsDebitedEvent struct {
	UserID    uint64 `json:"user_id"`
	Service   string `json:"service"`
	Reference string `json:"reference"`
	Points    int64  `json:"points"`
}
