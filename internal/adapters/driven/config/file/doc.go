// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: read-only JSON or TOML mapping, used for the tap's
//     config and state inputs
package file
