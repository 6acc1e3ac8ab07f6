// =============================================================================
// ERC721 Metadata Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks an attributes file
// without writing anything.
//
// COMMAND USAGE:
//   metagen validate -a ATTRIBUTES [--sheet NAME]
//
// OUTPUT:
//   - Row and trait counts
//   - A table of traits with their distinct and most common values
//   - Every row whose field count differs from the header
//
// The command exits non-zero when any row fails validation.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/erc721-metadata/internal/tablereader"
	"github.com/ginjaninja78/erc721-metadata/internal/validation"
	"github.com/spf13/cobra"
)

// newValidateCmd builds the 'validate' command.
func newValidateCmd(root *rootOptions) *cobra.Command {
	var attributes, sheet string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an attributes file without generating metadata",
		Long: `The validate command reads the attributes table, reports every data row
whose field count differs from the header, and summarizes the values of each
trait. Nothing is written.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if !cmd.Flags().Changed("sheet") {
				sheet = root.config.Sheet
			}
			return runValidate(cmd, attributes, sheet)
		},
	}

	cmd.Flags().StringVarP(&attributes, "attributes", "a", "", "Path to the attributes file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from .xlsx attribute files")
	_ = cmd.MarkFlagRequired("attributes")

	return cmd
}

// runValidate reads and checks the table, printing a report to stdout.
func runValidate(cmd *cobra.Command, attributes, sheet string) error {
	table, err := tablereader.Read(attributes, sheet)
	if err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}

	out := cmd.OutOrStdout()
	errs := validation.ValidateTable(table)

	fmt.Fprintf(out, "File:    %s\n", attributes)
	fmt.Fprintf(out, "Traits:  %d\n", len(table.Header()))
	fmt.Fprintf(out, "Records: %d\n\n", len(table.DataRows()))

	if summaries := validation.Summarize(table); len(summaries) > 0 {
		fmt.Fprintln(out, renderTraitTable(out, summaries))
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, validation.FormatErrors(errs))
	if len(errs) == 0 {
		fmt.Fprintln(out)
		return nil
	}

	return fmt.Errorf("%d row(s) failed validation", len(errs))
}
