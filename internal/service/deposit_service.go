package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"linkpulse-core/internal/event"
	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/logger"
	"linkpulse-core/pkg/monitor"
	"linkpulse-core/pkg/safe_random"
)

// Payment method names. These double as the Credit registry rows.
const (
	MethodQRCode = "qrcode"
	MethodPayPal = "paypal"
)

const orderCodeDigits = 6
const orderCodeMaxAttempts = 10

func defaultGenDigits(n int) (string, error) {
	return safe_random.GenerateRandomDigits(n)
}

// CreateOrderInput is the validated boundary type for order creation.
type CreateOrderInput struct {
	PackageID      uint64
	Quantity       int
	CouponCode     string // optional
	Currency       string // requested currency, "USD" or "VND"
	AcceptLanguage string // raw Accept-Language header
}

// OrderSummary is returned to the client after create/update.
type OrderSummary struct {
	Deposit        *model.Deposit  `json:"deposit"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	PaymentMethods []string        `json:"payment_methods"`
}

// SettlementInput is what a payment adapter reports. Exactly one of
// OrderCode / PayOrderID identifies the deposit.
type SettlementInput struct {
	OrderCode  string
	PayOrderID string
	Provider   string // credit method name, e.g. "qrcode", "paypal"
	// Amount is the settled amount for amount-matched providers (bank
	// transfer). Zero means the provider settles by status, not amount.
	Amount decimal.Decimal
	// Succeeded is the provider's verdict for status-based providers.
	Succeeded bool
	// GrantsSubscription extends the user's expiry by the package duration
	// (PayPal flow).
	GrantsSubscription bool
}

// Settlement outcomes.
const (
	OutcomeCompleted    = "completed"
	OutcomeFailed       = "failed"
	OutcomeDropped      = "dropped"      // late or duplicate event, no-op
	OutcomeInsufficient = "insufficient" // bank amount below total, await top-up
)

type SettleResult struct {
	Outcome string
	Deposit *model.Deposit
	Points  int64
}

// DepositService owns the deposit state machine. All deposit mutations in
// the system go through here.
type DepositService struct {
	db      *gorm.DB
	catalog *CatalogService
	coupons *CouponService
	ledger  *LedgerService

	// genDigits lets tests force order-code collisions.
	genDigits func(n int) (string, error)

	// onSettled runs after a successful settlement commit (receipt task
	// enqueue). Optional.
	onSettled func(dep *model.Deposit, points int64)
}

func NewDepositService(db *gorm.DB, catalog *CatalogService, coupons *CouponService, ledger *LedgerService) *DepositService {
	return &DepositService{
		db:        db,
		catalog:   catalog,
		coupons:   coupons,
		ledger:    ledger,
		genDigits: defaultGenDigits,
	}
}

// OnSettled registers the post-commit hook.
func (s *DepositService) OnSettled(fn func(dep *model.Deposit, points int64)) {
	s.onSettled = fn
}

// ResolveLocaleVN decides whether the caller is treated as Vietnamese.
// The Accept-Language header wins only when it starts with "vi"; otherwise
// the flag on the user record decides.
func ResolveLocaleVN(acceptLanguage string, userIsVN bool) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(acceptLanguage)), "vi") {
		return true
	}
	return userIsVN
}

// paymentMethodsFor lists the methods offered per locale.
func paymentMethodsFor(localeVN bool) []string {
	if localeVN {
		return []string{MethodQRCode, MethodPayPal}
	}
	return []string{MethodPayPal}
}

// methodAllowed reports whether the method is offered for the locale. The
// checkout check must accept exactly what the order summary offered.
func methodAllowed(localeVN bool, method string) bool {
	for _, m := range paymentMethodsFor(localeVN) {
		if m == method {
			return true
		}
	}
	return false
}

// resolvePrice picks the unit price and effective currency.
// VND applies only when the locale is Vietnamese AND the caller asked for it;
// everyone else pays USD regardless of the requested currency.
func resolvePrice(pkg *model.Package, localeVN bool, requested string) (decimal.Decimal, string) {
	if localeVN && strings.EqualFold(requested, "VND") {
		return pkg.PriceVND, "VND"
	}
	return pkg.PriceUSD, "USD"
}

// CreateOrUpdateOrder creates the user's draft order, or rewrites the
// existing one in place: a user has at most one order in {new, pending}
// ("cart" semantics). Rewriting detaches the previous coupon and clears the
// receipt fields; the order code survives the rewrite.
func (s *DepositService) CreateOrUpdateOrder(ctx context.Context, user *model.User, in CreateOrderInput) (*OrderSummary, error) {
	if in.Quantity <= 0 {
		return nil, errno.ErrInvalidQuantity
	}

	pkg, err := s.catalog.GetPackage(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}

	var coupon *model.Coupon
	if in.CouponCode != "" {
		coupon, err = s.coupons.Resolve(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := s.coupons.Validate(coupon, time.Now(), pkg.Type); err != nil {
			return nil, err
		}
	}

	localeVN := ResolveLocaleVN(in.AcceptLanguage, user.IsVN)
	price, currency := resolvePrice(pkg, localeVN, in.Currency)

	subtotal := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
	discount := ComputeDiscount(coupon, subtotal)
	total := ApplyDiscount(subtotal, discount)

	var dep model.Deposit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Find the live draft, locked: a racing create for the same user
		// serializes here and the later one wins.
		findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status IN ?", user.ID, []string{model.DepositStatusNew, model.DepositStatusPending}).
			First(&dep).Error

		switch {
		case findErr == nil:
			// 2a. Rewrite the draft in place.
			dep.ResetDraft()
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// 2b. Fresh order with a fresh unique code.
			code, codeErr := s.newOrderCode(func(c string) (bool, error) {
				var n int64
				if err := tx.Model(&model.Deposit{}).Where("order_code = ?", c).Count(&n).Error; err != nil {
					return false, err
				}
				return n > 0, nil
			})
			if codeErr != nil {
				return codeErr
			}
			dep = model.Deposit{UserID: user.ID, OrderCode: code, Status: model.DepositStatusNew}
		default:
			return errno.ErrDatabase.WithMessage(findErr.Error())
		}

		// 3. Attach the new package / quantity / coupon.
		dep.PackageID = pkg.ID
		dep.Quantity = in.Quantity
		dep.Currency = currency
		if currency == "VND" {
			dep.MoneyVND = total
		} else {
			dep.MoneyVND = decimal.Zero
		}
		if coupon != nil {
			dep.CouponID = &coupon.ID
		}

		if err := tx.Save(&dep).Error; err != nil {
			return errno.ErrDatabase.WithMessage(err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitor.Business.OrdersCreatedTotal.Inc()

	return &OrderSummary{
		Deposit:        &dep,
		Subtotal:       subtotal,
		Discount:       discount,
		Total:          total,
		Currency:       currency,
		PaymentMethods: paymentMethodsFor(localeVN),
	}, nil
}

// Checkout moves the draft to pending and attaches the provider correlation
// id. pending is the only state a payment intent/QR exists for. The locale
// resolves from the same Accept-Language the order summary used, so the
// methods accepted here are the methods that were offered.
func (s *DepositService) Checkout(ctx context.Context, user *model.User, method, acceptLanguage string) (*model.Deposit, error) {
	localeVN := ResolveLocaleVN(acceptLanguage, user.IsVN)
	if !methodAllowed(localeVN, method) {
		return nil, errno.ErrUnsupportedCurrency.WithMessage("payment method not available for this account")
	}

	var dep model.Deposit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status IN ?", user.ID, []string{model.DepositStatusNew, model.DepositStatusPending}).
			First(&dep).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return errno.ErrNoDraftOrder
		}
		if findErr != nil {
			return errno.ErrDatabase.WithMessage(findErr.Error())
		}

		payID := uuid.NewString()
		dep.PayOrderID = &payID
		dep.Status = model.DepositStatusPending
		if err := tx.Save(&dep).Error; err != nil {
			return errno.ErrDatabase.WithMessage(err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// Settle applies a provider settlement event. The whole transition (status
// change, receipt snapshot, credit-method upsert, coupon redemption, ledger
// credit and expiry extension) commits atomically or not at all.
//
// A second event for an already-terminal order finds no row in {new,pending}
// and is dropped: the provider already got its success response historically,
// so this is a logged no-op, never an error.
func (s *DepositService) Settle(ctx context.Context, in SettlementInput) (*SettleResult, error) {
	result := &SettleResult{Outcome: OutcomeDropped}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Locate the live order by its correlation key, locked so a racing
		// duplicate blocks here and then sees the terminal status.
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status IN ?", []string{model.DepositStatusNew, model.DepositStatusPending})
		switch {
		case in.OrderCode != "":
			q = q.Where("order_code = ?", in.OrderCode)
		case in.PayOrderID != "":
			q = q.Where("pay_order_id = ?", in.PayOrderID)
		default:
			return errno.ErrDepositNotFound
		}

		var dep model.Deposit
		findErr := q.First(&dep).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			logger.Warn("[Settle] no live order for settlement event, dropping",
				zap.String("order_code", in.OrderCode),
				zap.String("pay_order_id", in.PayOrderID),
				zap.String("provider", in.Provider))
			return nil // dropped
		}
		if findErr != nil {
			return errno.ErrDatabase.WithMessage(findErr.Error())
		}

		// 2. Explicit provider failure: pending -> failed. failed is reachable
		// only from pending; a new draft has no payment intent a provider
		// could be rejecting, so a failure verdict for one is dropped.
		if in.Amount.IsZero() && !in.Succeeded {
			if dep.Status != model.DepositStatusPending {
				logger.Warn("[Settle] failure verdict for a draft without a payment intent, dropping",
					zap.String("order_code", dep.OrderCode),
					zap.String("provider", in.Provider))
				return nil // dropped
			}
			dep.Status = model.DepositStatusFailed
			if err := tx.Save(&dep).Error; err != nil {
				return errno.ErrDatabase.WithMessage(err.Error())
			}
			result.Outcome = OutcomeFailed
			result.Deposit = &dep
			return nil
		}

		pkg, err := s.catalog.GetPackage(ctx, dep.PackageID)
		if err != nil {
			return err
		}

		var coupon *model.Coupon
		if dep.CouponID != nil {
			var c model.Coupon
			if err := tx.First(&c, *dep.CouponID).Error; err == nil {
				coupon = &c
			}
		}

		localeVN := dep.Currency == "VND"
		price, _ := resolvePrice(pkg, localeVN, dep.Currency)
		subtotal := price.Mul(decimal.NewFromInt(int64(dep.Quantity)))
		total := ApplyDiscount(subtotal, ComputeDiscount(coupon, subtotal))

		// 3. Bank transfers settle by amount: short transfers are ignored and
		// the order stays live awaiting a top-up that reaches the threshold.
		if !in.Amount.IsZero() && in.Amount.LessThan(total) {
			logger.Info("[Settle] amount below total, awaiting top-up",
				zap.String("order_code", dep.OrderCode),
				zap.String("received", in.Amount.String()),
				zap.String("total", total.String()))
			result.Outcome = OutcomeInsufficient
			result.Deposit = &dep
			return nil
		}

		// 4. Redemption bookkeeping, atomic with the completion.
		if coupon != nil {
			if err := s.coupons.Redeem(tx, coupon.ID); err != nil {
				if errors.Is(err, errno.ErrCouponExhausted) {
					// The money already moved; honor the agreed price but do
					// not push the counter past its limit.
					logger.Warn("[Settle] coupon exhausted between order and settlement",
						zap.String("coupon", coupon.Code),
						zap.String("order_code", dep.OrderCode))
				} else {
					return err
				}
			} else {
				monitor.Business.CouponsRedeemedTotal.WithLabelValues(coupon.CouponType).Inc()
			}
		}

		// 5. Payment method row, lazily created on first use per adapter.
		var credit model.Credit
		if err := tx.Where(model.Credit{Name: in.Provider}).
			Attrs(model.Credit{Description: in.Provider + " payment"}).
			FirstOrCreate(&credit).Error; err != nil {
			return errno.ErrDatabase.WithMessage(err.Error())
		}

		// 6. Terminal transition + one-way receipt snapshot.
		dep.Status = model.DepositStatusCompleted
		dep.CreditID = &credit.ID
		dep.AttachReceipt(pkg, coupon, price)
		if err := tx.Save(&dep).Error; err != nil {
			return errno.ErrDatabase.WithMessage(err.Error())
		}

		// 7. Exactly one ledger credit for the package points.
		points := pkg.Points * int64(dep.Quantity)
		if _, err := s.ledger.Append(tx, dep.UserID, model.TxTypeCredit, points,
			in.Provider, dep.OrderCode, "points package purchase", &dep.ID); err != nil {
			return err
		}

		// 8. Subscription extension (PayPal flow): from the later of now and
		// the current expiry.
		if in.GrantsSubscription && pkg.DurationDays > 0 {
			var u model.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, dep.UserID).Error; err != nil {
				return errno.ErrDatabase.WithMessage(err.Error())
			}
			base := time.Now()
			if u.ExpiresAt != nil && u.ExpiresAt.After(base) {
				base = *u.ExpiresAt
			}
			expiry := base.AddDate(0, 0, pkg.DurationDays)
			if err := tx.Model(&u).Update("expires_at", expiry).Error; err != nil {
				return errno.ErrDatabase.WithMessage(err.Error())
			}
		}

		// 9. Event, atomic with everything above.
		if err := model.CreateOutboxMessage(tx, event.TopicDepositCompleted, dep.OrderCode, event.DepositCompletedEvent{
			DepositID: dep.ID,
			UserID:    dep.UserID,
			OrderCode: dep.OrderCode,
			Provider:  in.Provider,
			Points:    points,
			Amount:    total.String(),
			Currency:  dep.Currency,
		}); err != nil {
			return errno.ErrDatabase.WithMessage(err.Error())
		}

		result.Outcome = OutcomeCompleted
		result.Deposit = &dep
		result.Points = points
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitor.Business.DepositsSettledTotal.WithLabelValues(in.Provider, result.Outcome).Inc()
	if result.Outcome == OutcomeCompleted {
		monitor.Business.PointsCreditedTotal.Add(float64(result.Points))
		if s.onSettled != nil {
			s.onSettled(result.Deposit, result.Points)
		}
	}

	return result, nil
}

// CurrentOrder returns the user's live draft, if any.
func (s *DepositService) CurrentOrder(ctx context.Context, userID uint64) (*model.Deposit, error) {
	var dep model.Deposit
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{model.DepositStatusNew, model.DepositStatusPending}).
		First(&dep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrDepositNotFound
	}
	if err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}
	return &dep, nil
}

// newOrderCode draws "LP " + 6 digits until it does not collide. The unique
// index on order_code is the backstop if two generators race past the check.
func (s *DepositService) newOrderCode(exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < orderCodeMaxAttempts; i++ {
		digits, err := s.genDigits(orderCodeDigits)
		if err != nil {
			return "", err
		}
		code := model.OrderCodePrefix + digits
		taken, err := exists(code)
		if err != nil {
			return "", errno.ErrDatabase.WithMessage(err.Error())
		}
		if !taken {
			return code, nil
		}
	}
	return "", errno.ErrOrderCodeGeneration
}
