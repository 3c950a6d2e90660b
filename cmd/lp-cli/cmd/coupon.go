package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"linkpulse-core/internal/model"
)

var (
	couponNumber      string
	couponType        string
	couponValue       string
	couponMaxUses     int
	couponUserID      uint64
	couponExpiresDays int
)

var couponCmd = &cobra.Command{
	Use:   "coupon",
	Short: "Coupon management",
}

var couponCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Mint a coupon",
	Long:  `Mints a coupon whose code is "CP" followed by the supplied number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := decimal.NewFromString(couponValue)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", couponValue, err)
		}
		switch couponType {
		case model.CouponTypeIncrease, model.CouponTypeDiscount, model.CouponTypeReward:
		default:
			return fmt.Errorf("invalid type %q (increase, discount, reward)", couponType)
		}

		db, err := connectDB()
		if err != nil {
			return err
		}

		coupon := model.Coupon{
			UserID:         couponUserID,
			Code:           model.CouponCodePrefix + couponNumber,
			CouponType:     couponType,
			CouponValue:    value,
			MaxRedemptions: couponMaxUses,
			IsActive:       true,
		}
		if couponExpiresDays > 0 {
			exp := time.Now().AddDate(0, 0, couponExpiresDays)
			coupon.ExpiresAt = &exp
		}

		if err := db.Create(&coupon).Error; err != nil {
			return fmt.Errorf("create coupon: %w", err)
		}

		fmt.Printf("Coupon minted: %s (type=%s value=%s uses=%d)\n",
			coupon.Code, coupon.CouponType, coupon.CouponValue.String(), coupon.MaxRedemptions)
		return nil
	},
}

func init() {
	couponCreateCmd.Flags().StringVar(&couponNumber, "number", "", "numeric part of the code, e.g. 1001 -> CP1001")
	couponCreateCmd.Flags().StringVar(&couponType, "type", "discount", "increase, discount or reward")
	couponCreateCmd.Flags().StringVar(&couponValue, "value", "10", "percent for discount, absolute amount otherwise")
	couponCreateCmd.Flags().IntVar(&couponMaxUses, "max-uses", 1, "remaining redemptions")
	couponCreateCmd.Flags().Uint64Var(&couponUserID, "user-id", 0, "issuing user id")
	couponCreateCmd.Flags().IntVar(&couponExpiresDays, "expires-days", 0, "days until expiry, 0 = never")
	_ = couponCreateCmd.MarkFlagRequired("number")

	couponCmd.AddCommand(couponCreateCmd)
	rootCmd.AddCommand(couponCmd)
}
