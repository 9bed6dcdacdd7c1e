package main

import (
	"fmt"
	"os"

	"teampulse/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "teampulse/docs" // Swagger docs
)

// @title Team Pulse API
// @version 1.0
// @description Monthly team performance dashboard: missions, points ledger, rankings and archives.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var (
	// Global flags
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd starts the API when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "teampulse",
	Short: "Team Pulse - monthly team performance dashboard",
	Long: `Team Pulse tracks the points a team earns through missions each month,
ranks every agent, converts points to bonuses and freezes closed months.

Run without arguments to start the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger, err = config.NewLogger(cfg)
		if err != nil {
			return err
		}
		if !cfg.EnvFileLoaded {
			logger.Debug("no .env file found, using process environment")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&servePort, "port", "", "override PORT")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, closeMonthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
