// Package payment holds the provider-facing shims. Each adapter only
// translates its provider's callback into a settlement call; all accounting
// happens behind the DepositService contract.
package payment

import (
	"context"

	"linkpulse-core/internal/service"
)

// Settler is the slice of DepositService the adapters need.
type Settler interface {
	Settle(ctx context.Context, in service.SettlementInput) (*service.SettleResult, error)
}
