// =============================================================================
// ERC721 Metadata Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the whole pipeline.
//
// COMMAND USAGE:
//   metagen generate -n NAME -d DESCRIPTION -u BASE_URI -a ATTRIBUTES [flags]
//
// REQUIRED FLAGS:
//   -n, --name        : Collection name
//   -d, --description : Description text, or a path to a file holding it
//   -u, --uri         : Base URI of the images (a trailing "/" is added)
//   -a, --attributes  : Attributes file (.csv/.txt, or .xlsx)
//
// OPTIONAL FLAGS (override config.yaml):
//   -o, --output      : Output directory (default "build")
//   --name-mode       : "collection" or "literal"
//   --name-literal    : Name prefix used in literal mode
//   --atomic          : Validate and stage the whole run before writing
//   --indent          : Pretty-print documents with this indentation
//   --sheet           : Worksheet to read from .xlsx files
//   --summary         : Write a run summary file into the output directory
//
// PROCESSING PIPELINE:
//   1. Resolve the description and normalize the base URI
//   2. Read the attributes table
//   3. Build and write one document per data row
//   4. Report the number of documents written
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/erc721-metadata/internal/builder"
	"github.com/ginjaninja78/erc721-metadata/internal/config"
	"github.com/ginjaninja78/erc721-metadata/internal/jsonwriter"
	"github.com/ginjaninja78/erc721-metadata/internal/tablereader"
	"github.com/ginjaninja78/erc721-metadata/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	name        string
	description string
	uri         string
	attributes  string

	outputDir   string
	nameMode    string
	nameLiteral string
	indent      string
	sheet       string
	atomic      bool
	summary     bool
}

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// newGenerateCmd builds the 'generate' command.
func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate ERC721 metadata files from an attributes table",
		Long: `The generate command reads the attributes table, then writes one metadata
document per data row to <output>/<i>.json, where i is the zero-based position
of the row after the header.

Each document contains:
  name         "<collection> #<i>" (or "<name literal> #<i>" in literal mode)
  description  the given description
  image        "<base uri>/<i>.png"
  attributes   one {"trait_type", "value"} pair per column, in column order

The first row whose field count differs from the header stops the run. Files
written before it are kept unless --atomic is set, in which case nothing is
written unless every row is valid. Existing files are overwritten; files from
an earlier run with more rows are not removed.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors print usage, run errors do not.
			cmd.SilenceUsage = true
			return runGenerate(cmd, root, opts)
		},
	}

	// ==========================================================================
	// REQUIRED FLAGS
	// ==========================================================================

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Name of the collection")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Description of the collection, or a path to a file containing it")
	cmd.Flags().StringVarP(&opts.uri, "uri", "u", "", "Base URI of the item images (normalized to include a trailing slash)")
	cmd.Flags().StringVarP(&opts.attributes, "attributes", "a", "", "Path to the attributes file")

	for _, name := range []string{"name", "description", "uri", "attributes"} {
		_ = cmd.MarkFlagRequired(name)
	}

	// ==========================================================================
	// OPTIONAL FLAGS
	// ==========================================================================

	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Output directory (default from config, \"build\")")
	cmd.Flags().StringVar(&opts.nameMode, "name-mode", "", "Record naming: \"collection\" or \"literal\"")
	cmd.Flags().StringVar(&opts.nameLiteral, "name-literal", "", "Name prefix used by --name-mode literal")
	cmd.Flags().BoolVar(&opts.atomic, "atomic", false, "Validate every row and stage all files before writing to the output directory")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "Pretty-print documents using this indentation")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read from .xlsx attribute files")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Write a run summary file into the output directory")

	return cmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate merges flags over the loaded config and runs the builder.
func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	startTime := time.Now()
	cfg := root.config
	flags := cmd.Flags()

	// Flags win over the config file only when given.
	outputDir := cfg.OutputDir
	if flags.Changed("output") {
		outputDir = opts.outputDir
	}
	nameModeValue := cfg.NameMode
	if flags.Changed("name-mode") {
		nameModeValue = opts.nameMode
	}
	nameLiteral := cfg.NameLiteral
	if flags.Changed("name-literal") {
		nameLiteral = opts.nameLiteral
	}
	indent := cfg.Indent
	if flags.Changed("indent") {
		indent = opts.indent
	}
	sheet := cfg.Sheet
	if flags.Changed("sheet") {
		sheet = opts.sheet
	}
	atomic := cfg.Atomic
	if flags.Changed("atomic") {
		atomic = opts.atomic
	}

	nameMode, err := builder.ParseNameMode(nameModeValue)
	if err != nil {
		return err
	}
	if err := config.ValidateIndent(indent); err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: RESOLVE ARGUMENTS
	// =========================================================================

	description, err := utils.ResolveDescription(opts.description)
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}
	baseURI := builder.NormalizeBaseURI(opts.uri)

	// =========================================================================
	// STEP 2: READ ATTRIBUTES
	// =========================================================================

	table, err := tablereader.Read(opts.attributes, sheet)
	if err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}

	root.logger.Debug("read attributes table", "path", opts.attributes, "rows", len(table.Rows))

	// =========================================================================
	// STEP 3: BUILD AND WRITE RECORDS
	// =========================================================================

	b := builder.New(builder.Options{
		OutputDir:   outputDir,
		NameMode:    nameMode,
		NameLiteral: nameLiteral,
		Atomic:      atomic,
		JSON:        jsonwriter.Options{Indent: indent},
	}, root.logger)

	result, err := b.Run(cmd.Context(), opts.name, description, baseURI, table)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: REPORT
	// =========================================================================

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d metadata file(s) to %s\n", result.Written, filepath.Clean(result.OutputDir))

	if opts.summary {
		summaryPath, err := utils.WriteSummaryLog(utils.ProcessingSummary{
			RunID:          result.RunID,
			StartTime:      startTime,
			EndTime:        time.Now(),
			AttributesFile: opts.attributes,
			OutputDir:      result.OutputDir,
			Collection:     opts.name,
			BaseURI:        baseURI,
			Traits:         result.Traits,
			RecordsWritten: result.Written,
			Atomic:         atomic,
		}, result.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		fmt.Fprintf(out, "Summary written to %s\n", summaryPath)
	}

	return nil
}
