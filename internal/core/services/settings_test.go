package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

func TestSettingsService_Config_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(nil), memory.NewConfigStore(nil))

	cfg, err := svc.Config()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestSettingsService_Config_NilStore(t *testing.T) {
	cfg, err := NewSettingsService(nil, nil).Config()

	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.BaseCurrency)
}

func TestSettingsService_Config_AllKeys(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"base":                   "EUR",
		"start_date":             "2020-01-01",
		"base_url":               "http://localhost:8080",
		"access_key":             "secret",
		"requests_per_second":    2.5,
		"retry_interval_seconds": 1.5,
		"max_attempts":           float64(3),
		"checkpoint_db":          "/tmp/tap",
		"metrics_file":           "/tmp/tap.prom",
	})

	cfg, err := NewSettingsService(store, nil).Config()

	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, day(1), cfg.StartDate)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.AccessKey)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryInterval)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, "/tmp/tap", cfg.CheckpointDB)
	assert.Equal(t, "/tmp/tap.prom", cfg.MetricsFile)
}

func TestSettingsService_Config_BadStartDate(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"start_date": "yesterday"})

	_, err := NewSettingsService(store, nil).Config()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_StartDate_StateWinsOverConfig(t *testing.T) {
	configStore := memory.NewConfigStore(map[string]any{"start_date": "2020-01-01"})
	stateStore := memory.NewConfigStore(map[string]any{"start_date": "2020-02-01"})
	svc := NewSettingsService(configStore, stateStore)

	cfg, err := svc.Config()
	require.NoError(t, err)
	start, err := svc.StartDate(cfg, now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestSettingsService_StartDate_ConfigWhenNoState(t *testing.T) {
	configStore := memory.NewConfigStore(map[string]any{"start_date": "2020-01-01"})
	svc := NewSettingsService(configStore, memory.NewConfigStore(nil))

	cfg, err := svc.Config()
	require.NoError(t, err)
	start, err := svc.StartDate(cfg, now)

	require.NoError(t, err)
	assert.Equal(t, day(1), start)
}

func TestSettingsService_StartDate_TodayByDefault(t *testing.T) {
	svc := NewSettingsService(nil, nil)

	start, err := svc.StartDate(domain.DefaultConfig(), now)

	require.NoError(t, err)
	assert.Equal(t, day(3), start)
}

func TestSettingsService_StartDate_BadState(t *testing.T) {
	stateStore := memory.NewConfigStore(map[string]any{"start_date": "01/02/2020"})
	svc := NewSettingsService(nil, stateStore)

	_, err := svc.StartDate(domain.DefaultConfig(), now)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_State_NotFound(t *testing.T) {
	_, err := NewSettingsService(nil, memory.NewConfigStore(nil)).State()

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
