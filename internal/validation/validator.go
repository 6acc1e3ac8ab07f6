// =============================================================================
// ERC721 Metadata Generator - Row Validation
// =============================================================================
//
// The only structural invariant enforced on an attributes table is that every
// data row has exactly as many fields as the header row. This module turns a
// violation into a ValidationError carrying enough context to find the row:
//   - the ordinal index of the data row (header excluded)
//   - the expected and actual field counts
//   - the raw row contents
//
// ERROR HANDLING:
//   - ValidateRow is used by the builder and stops the run at the first bad row
//   - ValidateTable collects every bad row for the validate command and for
//     the builder's atomic mode
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPE
// =============================================================================

// ValidationError represents a data row whose shape does not match the header.
type ValidationError struct {
	// RowIndex is the ordinal index of the data row (0 = first row after the
	// header). It is -1 for table-level problems such as a missing header.
	RowIndex int

	// Expected is the header field count.
	Expected int

	// Actual is the field count of the offending row.
	Actual int

	// Row is the offending row as read from the file.
	Row []string

	// Message overrides the default description when set.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid attributes at row %d, expected %d but got %d: [%s]",
		e.RowIndex,
		e.Expected,
		e.Actual,
		strings.Join(e.Row, ","),
	)
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateHeader reports a table with no header row.
func ValidateHeader(table *types.Table) *ValidationError {
	if len(table.Header()) == 0 {
		return &ValidationError{
			RowIndex: -1,
			Message:  "table has no header row",
		}
	}
	return nil
}

// ValidateRow checks that row has the same number of fields as header.
// index is the row's ordinal index among data rows.
func ValidateRow(index int, header, row []string) *ValidationError {
	if len(row) == len(header) {
		return nil
	}
	return &ValidationError{
		RowIndex: index,
		Expected: len(header),
		Actual:   len(row),
		Row:      row,
	}
}

// ValidateTable checks every data row and returns all violations in row order.
// A missing header is reported as a single error.
func ValidateTable(table *types.Table) []*ValidationError {
	if err := ValidateHeader(table); err != nil {
		return []*ValidationError{err}
	}

	header := table.Header()
	var errs []*ValidationError
	for i, row := range table.DataRows() {
		if err := ValidateRow(i, header, row); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// FormatErrors renders validation errors one per line for CLI output.
func FormatErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return "No validation errors."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d validation error(s):\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}
