package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	depID := uint64(7)

	tests := []struct {
		name    string
		txType  string
		points  int64
		wantErr bool
	}{
		{"credit", TxTypeCredit, 100, false},
		{"debit", TxTypeDebit, 100, false},
		{"zero points is a valid magnitude", TxTypeCredit, 0, false},
		{"negative points rejected", TxTypeCredit, -1, true},
		{"unknown type rejected", "transfer", 10, true},
		{"signed convention rejected at the door", TxTypeDebit, -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(1, tt.txType, tt.points, "indexing", "ref-1", "desc", &depID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.txType, tx.Type)
			assert.Equal(t, tt.points, tx.Points)
			assert.True(t, tx.Status)
			assert.Equal(t, &depID, tx.DepositID)
		})
	}
}

func TestTierMultiplier(t *testing.T) {
	assert.Equal(t, int64(1), TierMultiplier(TierNormal))
	assert.Equal(t, int64(2), TierMultiplier(TierAdvanced))
	assert.Equal(t, int64(3), TierMultiplier(TierPriority))
	assert.Equal(t, int64(1), TierMultiplier(""), "unknown tiers fall back to x1")
	assert.Equal(t, int64(1), TierMultiplier("enterprise"))
}
