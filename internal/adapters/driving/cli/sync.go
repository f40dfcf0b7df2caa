package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/metrics"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/singer"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/connectors/exchangeratesapi"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/services"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/logger"
)

// now is the clock used to resolve the default start date and bound the sync.
var now = time.Now

// loadSettings opens the config and state files named on the command line.
func loadSettings() (*services.SettingsService, error) {
	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	stateStore, err := file.NewConfigStore(statePath)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return services.NewSettingsService(configStore, stateStore), nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	log := logger.New(cmd.ErrOrStderr(), verbose)

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

	client, err := exchangeratesapi.NewClient(exchangeratesapi.Config{
		BaseURL:           cfg.BaseURL,
		AccessKey:         cfg.AccessKey,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, nil)
	if err != nil {
		return err
	}

	checkpoints, closeStore, err := openCheckpointStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	syncMetrics := metrics.NewSyncMetrics()
	fetcher := services.NewRateFetcher(client, services.DefaultRetryPolicy(cfg), log, syncMetrics)
	driver := services.NewSyncDriver(fetcher, singer.NewWriter(cmd.OutOrStdout()), log,
		services.WithCheckpointStore(checkpoints),
		services.WithMetrics(syncMetrics),
		services.WithClock(now),
		services.WithRunID(uuid.NewString()),
	)

	runErr := driver.Run(cmd.Context(), cfg.BaseCurrency, startDate)

	if cfg.MetricsFile != "" {
		if err := syncMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics: %v", err)
		}
	}

	return runErr
}

// openCheckpointStore returns the sqlite history when checkpoint_db is set,
// otherwise an in-memory one that lives for the run.
func openCheckpointStore(cfg domain.Config) (driven.CheckpointStore, func(), error) {
	if cfg.CheckpointDB == "" {
		return memory.NewCheckpointStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(cfg.CheckpointDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening checkpoint store: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}
