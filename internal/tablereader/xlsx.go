// =============================================================================
// ERC721 Metadata Generator - XLSX Table Reader
// =============================================================================
//
// Reads attribute tables that were kept in a spreadsheet instead of exported
// to CSV. The first row of the sheet is the header, exactly as in the
// delimited-text format.
//
// NOTE: excelize omits trailing empty cells from each row, so a data row
// whose last trait is blank reports fewer fields than the header and fails
// column-count validation. Fill blank traits with an explicit value.
//
// =============================================================================

package tablereader

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads every row of the named sheet. An empty sheet name selects
// the first sheet in the workbook.
func ReadXLSX(path, sheet string) (*types.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, classifyReadError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, &types.IOError{Op: "read", Path: path, Err: fmt.Errorf("workbook has no sheets")}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}

	// Drop trailing blank rows, mirroring ParseLines.
	end := len(rows)
	for end > 0 && isRowEmpty(rows[end-1]) {
		end--
	}

	return &types.Table{
		Rows:       rows[:end],
		SourceFile: path,
	}, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
