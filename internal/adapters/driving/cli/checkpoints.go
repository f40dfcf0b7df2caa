package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

var checkpointsLimit int

var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "List recently persisted states",
	Long: `Lists the checkpoint history kept in checkpoint_db, newest first.

Every STATE the tap emits is also recorded there with the run that wrote
it and whether the run was progressing, completed or failed.`,
	Args: cobra.NoArgs,
	RunE: runCheckpoints,
}

func init() {
	checkpointsCmd.Flags().IntVarP(&checkpointsLimit, "limit", "n", 20, "maximum number of checkpoints to show (0 for all)")
	rootCmd.AddCommand(checkpointsCmd)
}

func runCheckpoints(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := settings.Config()
	if err != nil {
		return err
	}
	if cfg.CheckpointDB == "" {
		return errors.New("checkpoint_db is not set in the config")
	}

	store, err := sqlite.NewStore(cfg.CheckpointDB)
	if err != nil {
		return fmt.Errorf("opening checkpoint store: %w", err)
	}
	defer store.Close()

	checkpoints, err := store.List(cmd.Context(), domain.StreamName, checkpointsLimit)
	if err != nil {
		return fmt.Errorf("failed to list checkpoints: %w", err)
	}

	if len(checkpoints) == 0 {
		cmd.Println("No checkpoints recorded.")
		return nil
	}

	cmd.Printf("Checkpoints for %s (%d):\n", domain.StreamName, len(checkpoints))
	for _, c := range checkpoints {
		cmd.Printf("  %s  %-9s  %s  run %s\n",
			c.CreatedAt.Format(time.RFC3339),
			c.Status,
			domain.FormatDate(c.State.StartDate),
			c.RunID)
	}
	return nil
}
