package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linkpulse-core/internal/model"
)

func TestEvaluateGate(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		expiresAt   *time.Time
		balance     int64
		needed      int64
		wantExpired bool
		wantEnough  bool
	}{
		{"no expiry, enough", nil, 100, 50, false, true},
		{"no expiry, exact balance admits", nil, 50, 50, false, true},
		{"no expiry, short one point", nil, 49, 50, false, false},
		{"live subscription, enough", &future, 100, 50, false, true},
		// Expiry is reported before insufficiency: a renewed subscription may
		// change what the user does next, so it is the more useful verdict.
		{"expired with plenty of points", &past, 1000, 1, true, false},
		{"expired and broke", &past, 0, 50, true, false},
		{"zero needed still admits", nil, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{ExpiresAt: tt.expiresAt}
			got := evaluateGate(user, tt.balance, tt.needed, now)
			assert.Equal(t, tt.wantExpired, got.IsExpired)
			assert.Equal(t, tt.wantEnough, got.IsEnough)
			assert.Equal(t, tt.balance, got.Balance)
			assert.Equal(t, tt.needed, got.NeededPoints)
		})
	}
}

func TestEvaluateGateExpiryBoundary(t *testing.T) {
	now := time.Now()

	// Expiring exactly now counts as expired; one nanosecond later does not.
	exact := now
	got := evaluateGate(&model.User{ExpiresAt: &exact}, 100, 1, now)
	assert.True(t, got.IsExpired)

	after := now.Add(time.Nanosecond)
	got = evaluateGate(&model.User{ExpiresAt: &after}, 100, 1, now)
	assert.False(t, got.IsExpired)
	assert.True(t, got.IsEnough)
}
