// =============================================================================
// ERC721 Metadata Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the metadata generator CLI. It delegates
// command execution to the cmd package.
//
// USAGE:
//   metagen generate   - Write one ERC721 metadata document per attribute row
//   metagen validate   - Check an attributes file without writing anything
//   metagen version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/                    : CLI command definitions (Cobra)
//   - internal/tablereader    : Attribute file loading (CSV lines, XLSX sheets)
//   - internal/validation     : Header/row shape checks
//   - internal/builder        : Record construction and the write loop
//   - internal/jsonwriter     : Record serialization and file output
//   - internal/config         : Optional YAML configuration
//   - internal/logging        : slog setup
//   - pkg/utils               : Output directory and staging helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/erc721-metadata/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
