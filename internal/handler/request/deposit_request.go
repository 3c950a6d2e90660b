package request

// CreateOrderRequest creates or rewrites the user's draft order.
type CreateOrderRequest struct {
	PackageID  uint64 `json:"package_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	CouponCode string `json:"coupon_code"`
	Currency   string `json:"currency" binding:"omitempty,oneof=USD VND"`
}

// CheckoutRequest generates the payment intent for the draft order.
type CheckoutRequest struct {
	Method string `json:"method" binding:"required,oneof=qrcode paypal"`
}
