// Package domain defines the core business entities for the exchange-rate tap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SyncState: The resumable day cursor
//   - Config: Read-only run configuration
//   - RatePayload: One day's provider response
//   - ExchangeRate: The normalised record emitted per day
//   - FetchError: A failed upstream request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
