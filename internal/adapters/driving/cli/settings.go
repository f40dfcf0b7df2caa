package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved configuration",
	Long: `Prints the configuration after defaults are applied, and the date the
next run would start from given the --config and --state files.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := settings.Config()
	if err != nil {
		return err
	}
	startDate, err := settings.StartDate(cfg, now())
	if err != nil {
		return err
	}

	source := "today"
	if _, err := settings.State(); err == nil {
		source = "state"
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	} else if cfg.HasStartDate() {
		source = "config"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Base: %s\n", cfg.BaseCurrency)
	cmd.Printf("  Start date: %s (from %s)\n", domain.FormatDate(startDate), source)
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", cfg.BaseURL)
	if cfg.AccessKey != "" {
		cmd.Printf("  Access key: %s\n", maskAPIKey(cfg.AccessKey))
	} else {
		cmd.Printf("  Access key: (not set)\n")
	}
	cmd.Printf("  Requests per second: %g\n", cfg.RequestsPerSecond)
	cmd.Printf("  Retry interval: %s\n", cfg.RetryInterval)
	cmd.Printf("  Max attempts: %d\n", cfg.MaxAttempts)
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Checkpoint DB: %s\n", orNotSet(cfg.CheckpointDB))
	cmd.Printf("  Metrics file: %s\n", orNotSet(cfg.MetricsFile))

	return nil
}

// maskAPIKey masks an API key for display, showing only first and last 4 chars.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
