// =============================================================================
// ERC721 Metadata Generator - Metadata Builder
// =============================================================================
//
// This module contains the core generation logic. It turns a parsed attribute
// table into one metadata document per data row.
//
// GENERATION PIPELINE:
//   1. Ensure the output directory exists (idempotent)
//   2. Take the first row of the table as the header
//   3. For each data row, in file order, at ordinal index i:
//      a. Check the field count against the header
//      b. Pair header[j] with row[j] into an attribute list
//      c. Build the record name and image URI from i
//      d. Serialize the record
//      e. Write <output>/<i>.json, replacing any existing file
//   4. Return the number of documents written
//
// FAILURE SEMANTICS:
//   The first invalid row or write failure stops the run. In the default mode
//   documents written before the failure stay on disk. In atomic mode every
//   row is validated and written to a staging directory first, and nothing
//   reaches the output directory unless the whole table succeeds.
//
//   Documents left over from an earlier run with more rows are never removed.
//
// =============================================================================

package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/erc721-metadata/internal/jsonwriter"
	"github.com/ginjaninja78/erc721-metadata/internal/types"
	"github.com/ginjaninja78/erc721-metadata/internal/validation"
	"github.com/ginjaninja78/erc721-metadata/pkg/utils"
	"github.com/google/uuid"
)

// =============================================================================
// NAME MODES
// =============================================================================

// NameMode selects how each record's name is formed.
type NameMode string

const (
	// NameModeCollection names records "<collection> #<i>".
	NameModeCollection NameMode = "collection"

	// NameModeLiteral names records "<NameLiteral> #<i>" regardless of the
	// collection name passed to Build.
	NameModeLiteral NameMode = "literal"
)

// DefaultNameLiteral is the literal used by NameModeLiteral when none is set.
const DefaultNameLiteral = "name"

// ParseNameMode converts a config or flag value to a NameMode.
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", NameModeCollection:
		return NameModeCollection, nil
	case NameModeLiteral:
		return NameModeLiteral, nil
	default:
		return "", fmt.Errorf("unknown name mode %q (want %q or %q)", s, NameModeCollection, NameModeLiteral)
	}
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one generation run.
type Result struct {
	// RunID identifies the run in logs and the summary file.
	RunID string

	// OutputDir is the directory the documents were written to.
	OutputDir string

	// Traits is the header row of the table.
	Traits []string

	// Written is the number of documents written to OutputDir.
	Written int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// =============================================================================
// BUILDER STRUCTURE
// =============================================================================

// Options configures a Builder.
type Options struct {
	// OutputDir is the destination directory for the documents.
	OutputDir string

	// NameMode selects the record naming scheme.
	NameMode NameMode

	// NameLiteral is the name prefix used by NameModeLiteral.
	NameLiteral string

	// Atomic stages the whole run before touching OutputDir.
	Atomic bool

	// JSON controls document serialization.
	JSON jsonwriter.Options
}

// Builder generates metadata documents from attribute tables.
// A Builder holds no state between runs.
type Builder struct {
	opts   Options
	files  *utils.FileManager
	logger *slog.Logger
}

// New creates a Builder. A nil logger uses slog.Default().
func New(opts Options, logger *slog.Logger) *Builder {
	if opts.NameMode == "" {
		opts.NameMode = NameModeCollection
	}
	if opts.NameLiteral == "" {
		opts.NameLiteral = DefaultNameLiteral
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:   opts,
		files:  utils.NewFileManager(opts.OutputDir),
		logger: logger,
	}
}

// =============================================================================
// RECORD CONSTRUCTION
// =============================================================================

// NormalizeBaseURI makes sure uri ends with exactly one trailing "/" added
// when missing. URIs that already end in "/" are returned unchanged.
func NormalizeBaseURI(uri string) string {
	if strings.HasSuffix(uri, "/") {
		return uri
	}
	return uri + "/"
}

// RecordName returns the name of the record at ordinal index i.
func (b *Builder) RecordName(collection string, i int) string {
	prefix := collection
	if b.opts.NameMode == NameModeLiteral {
		prefix = b.opts.NameLiteral
	}
	return prefix + " #" + strconv.Itoa(i)
}

// BuildRecord builds the record for the data row at ordinal index i.
// It returns a *validation.ValidationError when row and header differ in
// length.
func (b *Builder) BuildRecord(i int, collection, description, baseURI string, header, row []string) (types.Record, error) {
	if verr := validation.ValidateRow(i, header, row); verr != nil {
		return types.Record{}, verr
	}

	attrs := make([]types.Attribute, len(header))
	for j := range header {
		attrs[j] = types.Attribute{TraitType: header[j], Value: row[j]}
	}

	return types.Record{
		Name:        b.RecordName(collection, i),
		Description: description,
		Image:       NormalizeBaseURI(baseURI) + strconv.Itoa(i) + ".png",
		Attributes:  attrs,
	}, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Build writes one document per data row of table and returns how many
// documents were written to the output directory.
func (b *Builder) Build(ctx context.Context, collection, description, baseURI string, table *types.Table) (int, error) {
	result, err := b.Run(ctx, collection, description, baseURI, table)
	return result.Written, err
}

// Run is Build with run details for reporting.
func (b *Builder) Run(ctx context.Context, collection, description, baseURI string, table *types.Table) (Result, error) {
	startTime := time.Now()
	result := Result{
		RunID:     uuid.New().String(),
		OutputDir: b.opts.OutputDir,
	}
	logger := b.logger.With("run_id", result.RunID)

	if err := b.files.EnsureOutputDir(); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	if verr := validation.ValidateHeader(table); verr != nil {
		return result, verr
	}
	result.Traits = table.Header()

	logger.Info("generating metadata",
		"source", table.SourceFile,
		"output_dir", b.opts.OutputDir,
		"records", len(table.DataRows()),
		"traits", len(result.Traits),
		"atomic", b.opts.Atomic,
	)

	var err error
	if b.opts.Atomic {
		result.Written, err = b.runStaged(ctx, logger, collection, description, baseURI, table)
	} else {
		result.Written, err = b.writeAll(ctx, logger, b.opts.OutputDir, collection, description, baseURI, table)
	}
	result.Elapsed = time.Since(startTime)

	if err != nil {
		logger.Error("generation failed", "written", result.Written, "error", err)
		return result, err
	}

	logger.Info("generation complete", "written", result.Written, "elapsed", result.Elapsed)
	return result, nil
}

// writeAll builds and writes every data row into dir, stopping at the first
// error. It returns the number of documents written so far.
func (b *Builder) writeAll(ctx context.Context, logger *slog.Logger, dir, collection, description, baseURI string, table *types.Table) (int, error) {
	header := table.Header()
	written := 0

	for i, row := range table.DataRows() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		rec, err := b.BuildRecord(i, collection, description, baseURI, header, row)
		if err != nil {
			return written, err
		}

		data, err := jsonwriter.Marshal(rec, b.opts.JSON)
		if err != nil {
			return written, err
		}

		path, err := jsonwriter.WriteRecord(dir, i, data)
		if err != nil {
			return written, fmt.Errorf("failed to write record %d: %w", i, err)
		}
		written++

		logger.Debug("wrote record", "index", i, "path", path)
	}

	return written, nil
}

// runStaged validates the whole table, writes it into a staging directory and
// only then moves the documents into the output directory.
func (b *Builder) runStaged(ctx context.Context, logger *slog.Logger, collection, description, baseURI string, table *types.Table) (int, error) {
	if errs := validation.ValidateTable(table); len(errs) > 0 {
		logger.Warn("table failed validation, nothing written", "errors", len(errs))
		return 0, errs[0]
	}

	stagingDir, err := b.files.NewStagingDir()
	if err != nil {
		return 0, fmt.Errorf("failed to create staging directory: %w", err)
	}

	if _, err := b.writeAll(ctx, logger, stagingDir, collection, description, baseURI, table); err != nil {
		if derr := b.files.DiscardStaging(stagingDir); derr != nil {
			logger.Warn("failed to remove staging directory", "path", stagingDir, "error", derr)
		}
		return 0, err
	}

	moved, err := b.files.Commit(stagingDir)
	if err != nil {
		if derr := b.files.DiscardStaging(stagingDir); derr != nil {
			logger.Warn("failed to remove staging directory", "path", stagingDir, "error", derr)
		}
		return moved, fmt.Errorf("failed to commit staged records: %w", err)
	}
	return moved, nil
}
