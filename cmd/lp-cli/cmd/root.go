package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"linkpulse-core/pkg/config"
	"linkpulse-core/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "lp-cli",
	Short: "LinkPulse operations command line tool",
	Long: `Back-office tool for the points platform.
Mints coupons and inspects deposit orders without going through the HTTP API.`,
}

// Execute adds all child commands to the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// connectDB loads the config and opens Postgres. Shared by every subcommand.
func connectDB() (*gorm.DB, error) {
	config.Init()
	cfg := config.Global.DB
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	return database.ConnectPostgres(dsn)
}
