package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/monitor"
)

var testMetricsOnce sync.Once

// openTestDB connects to the database named by TEST_DATABASE_DSN and migrates
// the schema. Tests built on it skip when no database is reachable, like the
// integration suite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=points_user password=points_password dbname=points_db port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skip("Skipping database test: postgres not running? " + err.Error())
		return nil
	}
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	// The settlement path bumps the business counters; register them once per
	// test binary.
	testMetricsOnce.Do(monitor.InitBusinessMetrics)
	return db
}

func newDepositStack(db *gorm.DB) *DepositService {
	catalog := NewCatalogService(db, nil)
	coupons := NewCouponService(db, "TRIAN20")
	ledger := NewLedgerService(db)
	return NewDepositService(db, catalog, coupons, ledger)
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	tag := uuid.NewString()[:8]
	u := &model.User{
		Username:     "buyer-" + tag,
		Email:        "buyer-" + tag + "@example.com",
		PasswordHash: "x",
		Status:       model.UserStatusActive,
		Tier:         model.TierNormal,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPackage(t *testing.T, db *gorm.DB, points int64) *model.Package {
	t.Helper()
	p := &model.Package{
		Name:     "Mini " + uuid.NewString()[:8],
		Type:     "mini",
		PriceUSD: decimal.NewFromInt(10),
		PriceVND: decimal.NewFromInt(250000),
		Points:   points,
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestSettleIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	svc := newDepositStack(db)
	user := seedUser(t, db)
	pkg := seedPackage(t, db, 500)

	_, err := svc.CreateOrUpdateOrder(ctx, user, CreateOrderInput{PackageID: pkg.ID, Quantity: 1, Currency: "USD"})
	require.NoError(t, err)
	dep, err := svc.Checkout(ctx, user, MethodPayPal, "")
	require.NoError(t, err)
	require.NotNil(t, dep.PayOrderID)

	in := SettlementInput{PayOrderID: *dep.PayOrderID, Provider: MethodPayPal, Succeeded: true}

	first, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, first.Outcome)
	assert.Equal(t, int64(500), first.Points)

	// A replayed provider event finds no live order and is dropped.
	second, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDropped, second.Outcome)

	var credits int64
	require.NoError(t, db.Model(&model.Transaction{}).
		Where("deposit_id = ? AND type = ?", first.Deposit.ID, model.TxTypeCredit).
		Count(&credits).Error)
	assert.Equal(t, int64(1), credits, "package points must be credited exactly once")

	bal, err := NewLedgerService(db).ComputeBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), bal.Net)
}

func TestCreateOrderRewritesDraftInPlace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	svc := newDepositStack(db)
	user := seedUser(t, db)
	firstPkg := seedPackage(t, db, 100)
	secondPkg := seedPackage(t, db, 1000)

	coupon := &model.Coupon{
		UserID:         user.ID,
		Code:           "CP" + uuid.NewString()[:8],
		CouponType:     model.CouponTypeDiscount,
		CouponValue:    decimal.NewFromInt(10),
		MaxRedemptions: 1,
		IsActive:       true,
	}
	require.NoError(t, db.Create(coupon).Error)

	one, err := svc.CreateOrUpdateOrder(ctx, user, CreateOrderInput{
		PackageID:  firstPkg.ID,
		Quantity:   2,
		CouponCode: coupon.Code,
		Currency:   "USD",
	})
	require.NoError(t, err)
	require.NotNil(t, one.Deposit.CouponID)

	two, err := svc.CreateOrUpdateOrder(ctx, user, CreateOrderInput{
		PackageID: secondPkg.ID,
		Quantity:  1,
		Currency:  "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, one.Deposit.ID, two.Deposit.ID)
	assert.Equal(t, one.Deposit.OrderCode, two.Deposit.OrderCode, "the order code survives the rewrite")
	assert.Equal(t, secondPkg.ID, two.Deposit.PackageID)
	assert.Nil(t, two.Deposit.CouponID, "the rewrite detaches the previous coupon")

	var live int64
	require.NoError(t, db.Model(&model.Deposit{}).
		Where("user_id = ? AND status IN ?", user.ID, []string{model.DepositStatusNew, model.DepositStatusPending}).
		Count(&live).Error)
	assert.Equal(t, int64(1), live, "a user has at most one live order")
}

func TestFailureVerdictOnlyFailsPending(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	svc := newDepositStack(db)
	user := seedUser(t, db)
	pkg := seedPackage(t, db, 200)

	sum, err := svc.CreateOrUpdateOrder(ctx, user, CreateOrderInput{PackageID: pkg.ID, Quantity: 1, Currency: "USD"})
	require.NoError(t, err)

	// A failure verdict for a draft that never checked out has no payment
	// intent behind it and must not touch the order.
	res, err := svc.Settle(ctx, SettlementInput{OrderCode: sum.Deposit.OrderCode, Provider: MethodPayPal})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDropped, res.Outcome)

	var dep model.Deposit
	require.NoError(t, db.First(&dep, sum.Deposit.ID).Error)
	assert.Equal(t, model.DepositStatusNew, dep.Status)

	// After checkout the same verdict fails the order.
	_, err = svc.Checkout(ctx, user, MethodPayPal, "")
	require.NoError(t, err)
	res, err = svc.Settle(ctx, SettlementInput{OrderCode: dep.OrderCode, Provider: MethodPayPal})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)

	require.NoError(t, db.First(&dep, sum.Deposit.ID).Error)
	assert.Equal(t, model.DepositStatusFailed, dep.Status)
}
