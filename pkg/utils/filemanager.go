// =============================================================================
// ERC721 Metadata Generator - File Manager Utility
// =============================================================================
//
// This module provides the file-system glue around the metadata builder:
//   - Destination directory management
//   - Staging directories for atomic runs
//   - Description argument resolution (literal text or a file path)
//   - Run summary generation
//
// STAGING STRATEGY:
//   - A staging directory is created inside the output directory so that
//     committing a run is a rename on the same file system
//   - Staged files are renamed into the output directory one by one
//   - A failed run removes its staging directory and leaves the output
//     directory as it was
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
	"github.com/google/uuid"
)

// stagingPrefix marks directories created by NewStagingDir.
const stagingPrefix = ".staging-"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the builder.
type FileManager struct {
	// OutputDir is the directory where metadata documents are placed.
	OutputDir string
}

// NewFileManager creates a new FileManager for the given output directory.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{OutputDir: outputDir}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
// Calling it on an existing directory is a no-op.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return &types.IOError{Op: "mkdir", Path: fm.OutputDir, Err: err}
	}
	return nil
}

// NewStagingDir creates a uniquely named staging directory inside OutputDir.
// The output directory must already exist.
func (fm *FileManager) NewStagingDir() (string, error) {
	dir := filepath.Join(fm.OutputDir, stagingPrefix+uuid.New().String())
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", &types.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return dir, nil
}

// Commit moves every regular file in stagingDir into OutputDir, replacing
// files of the same name, then removes stagingDir.
//
// RETURNS:
//   - The number of files moved.
//   - An error if any rename fails. Files already moved stay in place.
func (fm *FileManager) Commit(stagingDir string) (int, error) {
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return 0, &types.IOError{Op: "read", Path: stagingDir, Err: err}
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(stagingDir, entry.Name())
		dst := filepath.Join(fm.OutputDir, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return moved, &types.IOError{Op: "rename", Path: dst, Err: err}
		}
		moved++
	}

	if err := os.RemoveAll(stagingDir); err != nil {
		return moved, &types.IOError{Op: "remove", Path: stagingDir, Err: err}
	}

	return moved, nil
}

// DiscardStaging removes a staging directory and everything in it.
func (fm *FileManager) DiscardStaging(stagingDir string) error {
	if !strings.HasPrefix(filepath.Base(stagingDir), stagingPrefix) {
		return fmt.Errorf("refusing to remove %s: not a staging directory", stagingDir)
	}
	if !FileExists(stagingDir) {
		return nil
	}
	return os.RemoveAll(stagingDir)
}

// =============================================================================
// DESCRIPTION RESOLUTION
// =============================================================================

// ResolveDescription returns the contents of arg when it names an existing
// file, and arg itself otherwise.
func ResolveDescription(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return arg, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", &types.IOError{Op: "read", Path: arg, Err: err}
	}
	return string(data), nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a generate run.
type ProcessingSummary struct {
	RunID          string
	StartTime      time.Time
	EndTime        time.Time
	AttributesFile string
	OutputDir      string
	Collection     string
	BaseURI        string
	Traits         []string
	RecordsWritten int
	Atomic         bool
}

// WriteSummaryLog writes a processing summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("generate_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", &types.IOError{Op: "write", Path: summaryPath, Err: err}
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "ERC721 Metadata Generator - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:          %s\n"+
		"  Start Time:      %s\n"+
		"  End Time:        %s\n"+
		"  Duration:        %s\n\n"+
		"Collection:\n"+
		"  Name:            %s\n"+
		"  Base URI:        %s\n"+
		"  Attributes File: %s\n"+
		"  Output Dir:      %s\n"+
		"  Atomic:          %t\n\n"+
		"Statistics:\n"+
		"  Traits:          %d\n"+
		"  Records Written: %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.Collection,
		summary.BaseURI,
		summary.AttributesFile,
		summary.OutputDir,
		summary.Atomic,
		len(summary.Traits),
		summary.RecordsWritten)

	if len(summary.Traits) > 0 {
		writer.WriteString("Trait Types:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, trait := range summary.Traits {
			fmt.Fprintf(writer, "  %s\n", trait)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", &types.IOError{Op: "write", Path: summaryPath, Err: err}
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
