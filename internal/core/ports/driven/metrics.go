package driven

import "time"

// Fetch attempt outcomes reported to Metrics.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomeTerminal  = "terminal"
)

// Metrics counts sync activity.
type Metrics interface {
	// FetchAttempt records one upstream request and its outcome.
	FetchAttempt(outcome string)

	// RecordEmitted records a record written for the given day.
	RecordEmitted(date time.Time)
}
