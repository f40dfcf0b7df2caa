package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Flags shared by the sync run and the inspection commands.
var (
	configPath string
	statePath  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tap-exchangeratesapi",
	Short: "Singer tap for exchangeratesapi.io",
	Long: `Replicates daily foreign exchange rates from exchangeratesapi.io.

Starting at the date held in the state file (or start_date from the config,
or today), one record per calendar day is written to stdout as Singer
RECORD messages, followed by a STATE message holding the last day emitted.
Feed the final STATE back with --state to resume.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (JSON, or TOML with a .toml extension)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&statePath, "state", "s", "", "state file written by a previous run")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx; cancelling ctx stops the sync.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
