// =============================================================================
// Cart Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Cart Parser CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   cartparser validate <source>  - Report every validation error in a cart file
//   cartparser parse <source>     - Validate, parse and total a cart file
//   cartparser serve              - Expose validate/parse over HTTP
//   cartparser version            - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Validation, parsing, sources, reports, HTTP transport
//   - pkg/       : Shared file utilities
//   - testdata/  : Sample cart files
//
// =============================================================================

package main

import (
	"github.com/vvorobets/cart-parser/cmd"
)

func main() {
	cmd.Execute()
}
