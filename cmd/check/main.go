package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-tracker/internal/app"
	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/alerts/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one inventory check and email an alert when stock is found",
	Long: `Run one inventory check and email an alert when stock is found.

Configuration is read from .env and the environment (EMAIL_USER, EMAIL_PASS,
EMAIL_TO, TEST_MODE, INVENTORY_SKUS, POSTAL_CODE, ...). The process exits with
status 1 when the availability API cannot be fetched or parsed.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config-dir")
		asJSON, _ := cmd.Flags().GetBool("json")
		testMode, _ := cmd.Flags().GetBool("test-mode")

		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if testMode {
			cfg.Checker.TestMode = true
		}

		if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		checker, err := app.NewChecker(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer checker.Close()

		report, err := checker.Run(ctx, domain.TriggerCLI)
		if err != nil {
			return fmt.Errorf("error fetching inventory: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		logger.Get().Info("Check complete",
			zap.String("run_id", report.RunID),
			zap.Int("items", report.Items),
			zap.Bool("sent", report.Sent),
		)
		return nil
	},
}

func init() {
	rootCmd.Flags().String("config-dir", ".", "Directory containing the .env file")
	rootCmd.Flags().Bool("json", false, "Print the run report as JSON")
	rootCmd.Flags().Bool("test-mode", false, "Inject a synthetic available record (overrides TEST_MODE)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
