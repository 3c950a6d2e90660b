package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy of the Errno with a more specific message,
// keeping the machine-readable code.
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Token invalid"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
)

// User errors (201xx)
var (
	ErrUserNotFound        = Errno{Code: 20101, Message: "User not found"}
	ErrUserAlreadyExist    = Errno{Code: 20102, Message: "User already exists"}
	ErrPasswordIncorrect   = Errno{Code: 20103, Message: "Password incorrect"}
	ErrUserBanned          = Errno{Code: 20104, Message: "User is banned"}
	ErrSubscriptionExpired = Errno{Code: 20105, Message: "Subscription expired, please renew before consuming points"}
)

// Package errors (202xx)
var (
	ErrPackageNotFound = Errno{Code: 20201, Message: "Package not found"}
)

// Coupon errors (203xx)
// Each condition keeps its own code so the client can render field-specific feedback.
var (
	ErrCouponNotFound      = Errno{Code: 20301, Message: "Coupon not found"}
	ErrCouponInactive      = Errno{Code: 20302, Message: "Coupon is not active"}
	ErrCouponExpired       = Errno{Code: 20303, Message: "Coupon has expired"}
	ErrCouponExhausted     = Errno{Code: 20304, Message: "Coupon redemption limit reached"}
	ErrCouponNotApplicable = Errno{Code: 20305, Message: "Coupon is not applicable to this package type"}
)

// Deposit errors (204xx)
var (
	ErrDepositNotFound     = Errno{Code: 20401, Message: "Deposit order not found"}
	ErrDepositNotPayable   = Errno{Code: 20402, Message: "Deposit order is not in a payable state"}
	ErrOrderCodeGeneration = Errno{Code: 20403, Message: "Could not allocate a unique order code"}
	ErrInvalidQuantity     = Errno{Code: 20404, Message: "Quantity must be a positive integer"}
	ErrUnsupportedCurrency = Errno{Code: 20405, Message: "Unsupported currency for this locale"}
	ErrNoDraftOrder        = Errno{Code: 20406, Message: "No draft order, create an order first"}
)

// Points errors (205xx)
var (
	ErrInsufficientPoints = Errno{Code: 20501, Message: "Insufficient points"}
	ErrNoValidURLs        = Errno{Code: 20502, Message: "No valid URLs in the request"}
)
