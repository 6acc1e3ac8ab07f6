// =============================================================================
// ERC721 Metadata Generator - Table Reader
// =============================================================================
//
// This module loads the attributes file into a types.Table. Two formats are
// supported:
//   - Plain comma-delimited text (the default for any extension)
//   - XLSX workbooks (files ending in .xlsx, see xlsx.go)
//
// CSV CONSTRAINTS:
//   The delimited-text reader is deliberately NOT a CSV parser. There is no
//   quoting or escaping: a field is the raw substring between two commas.
//   Whitespace is trimmed at line boundaries only, never per field. A trait
//   value containing a comma will shift every following column of its row.
//
// =============================================================================

package tablereader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
)

// Delimiter separates fields within a line.
const Delimiter = ","

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// Read loads the table at path, choosing the format from the extension.
// Sheet is only used for XLSX files; empty means the first sheet.
func Read(path, sheet string) (*types.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, sheet)
	}
	return ReadCSV(path)
}

// ReadCSV reads a comma-delimited file in full and splits it into rows.
//
// RETURNS:
//   - *types.NotFoundError when path does not exist.
//   - *types.IOError for any other read failure.
func ReadCSV(path string) (*types.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyReadError(path, err)
	}

	return &types.Table{
		Rows:       ParseLines(string(data)),
		SourceFile: path,
	}, nil
}

// ParseLines splits content into lines and each line into fields.
//
// Line breaks may be \n, \r\n or a lone \r. Each line has its surrounding whitespace (including a trailing \r) trimmed
// before splitting. Wholly blank lines at the end of the content are dropped;
// blank lines anywhere else are kept as single empty-field rows so that the
// builder reports them instead of silently skipping an item.
func ParseLines(content string) [][]string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	lines := strings.Split(content, "\n")

	// Drop trailing blank lines.
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	rows := make([][]string, 0, end)
	for _, line := range lines[:end] {
		rows = append(rows, strings.Split(strings.TrimSpace(line), Delimiter))
	}

	return rows
}

// classifyReadError maps an os error onto the package error taxonomy.
func classifyReadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &types.NotFoundError{Path: path}
	}
	return &types.IOError{Op: "read", Path: path, Err: err}
}
