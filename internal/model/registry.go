package model

// AllModels returns every model that takes part in schema migration.
// New tables only need to be added here, not in main.go.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Package{},
		&Credit{},
		&Transaction{},
		&Coupon{},
		&Deposit{},
		&IndexRequest{},
		&OutboxMessage{},
	}
}
