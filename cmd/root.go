// =============================================================================
// ERC721 Metadata Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (metagen)
//   ├── generateCmd (metagen generate)
//   ├── validateCmd (metagen validate)
//   └── versionCmd  (metagen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the optional configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ginjaninja78/erc721-metadata/internal/config"
	"github.com/ginjaninja78/erc721-metadata/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// SHARED COMMAND STATE
// =============================================================================

// rootOptions holds the persistent flags and what PersistentPreRunE derives
// from them. Subcommands read config and logger after pre-run.
type rootOptions struct {
	// cfgFile is the path to the configuration file (--config).
	cfgFile string

	// verbose forces debug logging (--verbose).
	verbose bool

	config *config.MainConfig
	logger *slog.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree. A fresh tree is built for every
// execution so flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "metagen",
		Short: "ERC721 Metadata Generator - Turn an attribute table into token metadata",
		Long: `metagen converts a table of item traits (one row per item, one column per
trait) into ERC721 metadata documents: one JSON file per row, named after the
row's zero-based position.

Input format:
  The first line is the header of trait names. Every following line is one
  item. Fields are separated by a single comma with no quoting, so trait
  values must not contain commas. Spreadsheets (.xlsx) are read directly.

Example Usage:
  metagen generate -n "My NFT" -d description.txt -u ipfs://Qm.../ -a traits.csv
  metagen generate -n "My NFT" -d "A collection" -u https://example.com/img -a traits.xlsx --atomic
  metagen validate -a traits.csv`,

		// Errors are printed once by Execute.
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// load reads the configuration and sets up logging.
// The implicit default config file may be absent; an explicit --config may not.
func (o *rootOptions) load(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.LoadMainConfig(o.cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}

	o.config = cfg
	o.logger = logging.Setup(cmd.ErrOrStderr(), level, cfg.LogFormat)
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
// An interrupt cancels the run at the next record boundary.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
