package domain

import "time"

// Configuration keys recognised in the config mapping.
const (
	ConfigKeyBase              = "base"
	ConfigKeyStartDate         = "start_date"
	ConfigKeyBaseURL           = "base_url"
	ConfigKeyAccessKey         = "access_key"
	ConfigKeyRequestsPerSecond = "requests_per_second"
	ConfigKeyRetryInterval     = "retry_interval_seconds"
	ConfigKeyMaxAttempts       = "max_attempts"
	ConfigKeyCheckpointDB      = "checkpoint_db"
	ConfigKeyMetricsFile       = "metrics_file"
)

// Defaults applied when a key is absent.
const (
	DefaultBaseCurrency      = "USD"
	DefaultBaseURL           = "https://api.exchangeratesapi.io"
	DefaultRequestsPerSecond = 5.0
	DefaultRetryInterval     = 30 * time.Second
	DefaultMaxAttempts       = 5
)

// Config is the read-only run configuration.
type Config struct {
	// BaseCurrency is the currency all rates are expressed against.
	BaseCurrency string

	// StartDate is the configured first day. Zero when not set.
	StartDate time.Time

	// BaseURL is the root of the rates API.
	BaseURL string

	// AccessKey is sent as the access_key query parameter when set.
	AccessKey string

	// RequestsPerSecond throttles outbound calls.
	RequestsPerSecond float64

	// RetryInterval is the fixed wait between attempts, before jitter.
	RetryInterval time.Duration

	// MaxAttempts bounds the number of tries per day.
	MaxAttempts int

	// CheckpointDB is the directory of the checkpoint database. Empty disables it.
	CheckpointDB string

	// MetricsFile is the textfile metrics are written to on exit. Empty disables it.
	MetricsFile string
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		BaseCurrency:      DefaultBaseCurrency,
		BaseURL:           DefaultBaseURL,
		RequestsPerSecond: DefaultRequestsPerSecond,
		RetryInterval:     DefaultRetryInterval,
		MaxAttempts:       DefaultMaxAttempts,
	}
}

// HasStartDate reports whether a start date was configured.
func (c Config) HasStartDate() bool {
	return !c.StartDate.IsZero()
}
