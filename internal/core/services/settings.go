package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// SettingsService turns the config and state mappings into typed values.
type SettingsService struct {
	configStore driven.ConfigStore
	stateStore  driven.ConfigStore
}

// NewSettingsService creates a new settings service.
// Either store may be empty; absence means an empty mapping.
func NewSettingsService(configStore, stateStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		stateStore:  stateStore,
	}
}

// Config reads the run configuration, applying defaults for absent keys.
func (s *SettingsService) Config() (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if s.configStore == nil {
		return cfg, nil
	}

	if base := s.configStore.GetString(domain.ConfigKeyBase); base != "" {
		cfg.BaseCurrency = base
	}
	if raw := s.configStore.GetString(domain.ConfigKeyStartDate); raw != "" {
		start, err := domain.ParseDate(raw)
		if err != nil {
			return domain.Config{}, fmt.Errorf("config %s: %w", domain.ConfigKeyStartDate, err)
		}
		cfg.StartDate = start
	}
	if url := s.configStore.GetString(domain.ConfigKeyBaseURL); url != "" {
		cfg.BaseURL = url
	}
	cfg.AccessKey = s.configStore.GetString(domain.ConfigKeyAccessKey)

	if rps := s.configStore.GetFloat(domain.ConfigKeyRequestsPerSecond); rps > 0 {
		cfg.RequestsPerSecond = rps
	}
	if secs := s.configStore.GetFloat(domain.ConfigKeyRetryInterval); secs > 0 {
		cfg.RetryInterval = time.Duration(secs * float64(time.Second))
	}
	if attempts := s.configStore.GetInt(domain.ConfigKeyMaxAttempts); attempts > 0 {
		cfg.MaxAttempts = attempts
	}

	cfg.CheckpointDB = s.configStore.GetString(domain.ConfigKeyCheckpointDB)
	cfg.MetricsFile = s.configStore.GetString(domain.ConfigKeyMetricsFile)

	return cfg, nil
}

// State reads the persisted cursor.
// Returns domain.ErrNotFound when the state mapping has no start_date.
func (s *SettingsService) State() (*domain.SyncState, error) {
	if s.stateStore == nil {
		return nil, domain.ErrNotFound
	}
	raw := s.stateStore.GetString(domain.StateKeyStartDate)
	if raw == "" {
		return nil, domain.ErrNotFound
	}
	start, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("state %s: %w", domain.StateKeyStartDate, err)
	}
	return &domain.SyncState{StartDate: start}, nil
}

// StartDate resolves the first cursor date: persisted state, then config,
// then the current UTC day. The first present value wins.
func (s *SettingsService) StartDate(cfg domain.Config, now time.Time) (time.Time, error) {
	state, err := s.State()
	if err == nil {
		return state.StartDate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return time.Time{}, err
	}

	if cfg.HasStartDate() {
		return cfg.StartDate, nil
	}
	return domain.StartOfDay(now), nil
}
