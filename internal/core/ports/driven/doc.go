// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RateSource: Fetches one day's rates from the upstream API
//   - RecordSink: Receives the schema, records and state messages
//   - ConfigStore: Read-only config and state mappings
//   - Logger: Leveled log sink
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CheckpointStore: Checkpoint history. Without it, state is only emitted to the sink.
//   - Metrics: Sync counters. Without it, nothing is counted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
