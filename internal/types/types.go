// =============================================================================
// ERC721 Metadata Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - tablereader
//   - validation
//   - builder
//   - jsonwriter
//
// =============================================================================

package types

import (
	"fmt"
	"io/fs"
)

// =============================================================================
// TABLE
// =============================================================================

// Table is the parsed attribute file: an ordered list of rows, each an
// ordered list of string fields. The first row is the header.
type Table struct {
	// Rows contains every row of the source file in file order,
	// header included.
	Rows [][]string

	// SourceFile is the path the table was read from.
	SourceFile string
}

// Header returns the header row, or nil when the table is empty.
func (t *Table) Header() []string {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns every row after the header.
func (t *Table) DataRows() [][]string {
	if t == nil || len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// =============================================================================
// METADATA RECORD
// =============================================================================

// Attribute is a single trait of an item. TraitType comes from the header
// row, Value from the data row at the same column.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Record is the ERC721 metadata document for one item.
// Field order here is the key order of the serialized JSON.
type Record struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// =============================================================================
// ERRORS
// =============================================================================

// NotFoundError is returned when the attributes file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Unwrap lets callers match with errors.Is(err, fs.ErrNotExist).
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// IOError wraps an underlying read or write failure.
type IOError struct {
	// Op is "read", "write", "mkdir" or "rename".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
