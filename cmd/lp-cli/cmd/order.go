package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Deposit order inspection",
}

var orderGetCmd = &cobra.Command{
	Use:   "get <order-code>",
	Short: "Show a deposit order by its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connectDB()
		if err != nil {
			return err
		}

		var dep model.Deposit
		err = db.Where("order_code = ?", args[0]).First(&dep).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no order with code %q", args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("Order    %s\n", dep.OrderCode)
		fmt.Printf("User     %d\n", dep.UserID)
		fmt.Printf("Package  %d x%d\n", dep.PackageID, dep.Quantity)
		fmt.Printf("Currency %s\n", dep.Currency)
		fmt.Printf("Status   %s\n", dep.Status)
		if dep.PayOrderID != nil {
			fmt.Printf("PayOrder %s\n", *dep.PayOrderID)
		}
		if dep.Receipt.PackageName != nil {
			fmt.Printf("Receipt  %s @ %s", *dep.Receipt.PackageName, dep.Receipt.PackagePrice.String())
			if dep.Receipt.CouponCode != nil {
				fmt.Printf(" (coupon %s)", *dep.Receipt.CouponCode)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	orderCmd.AddCommand(orderGetCmd)
	rootCmd.AddCommand(orderCmd)
}
