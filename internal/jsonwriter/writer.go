// =============================================================================
// ERC721 Metadata Generator - JSON Writer
// =============================================================================
//
// This module serializes metadata records and writes them to disk. Each
// record becomes its own document named after its ordinal index:
//
//   <dir>/0.json
//   <dir>/1.json
//   ...
//
// OUTPUT FORMAT:
//   {"name":"...","description":"...","image":"...",
//    "attributes":[{"trait_type":"...","value":"..."}, ...]}
//
//   Output is compact by default. HTML characters are not escaped, so a
//   description containing "<" or "&" is written as-is. The same record and
//   options always serialize to the same bytes.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls serialization.
type Options struct {
	// Indent is the per-level indentation. Empty means compact output.
	Indent string
}

// DefaultOptions returns compact output options.
func DefaultOptions() Options {
	return Options{}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Marshal serializes rec. The result has no trailing newline.
func Marshal(rec types.Record, opts Options) ([]byte, error) {
	if rec.Attributes == nil {
		// Keep "attributes": [] rather than null for a zero-column header.
		rec.Attributes = []types.Attribute{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}

	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode record %q: %w", rec.Name, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal parses a document produced by Marshal.
func Unmarshal(data []byte) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// RecordPath returns the destination of the record with the given index.
func RecordPath(dir string, index int) string {
	return filepath.Join(dir, strconv.Itoa(index)+".json")
}

// WriteRecord writes data to <dir>/<index>.json, replacing any existing file.
// The file is closed before WriteRecord returns.
func WriteRecord(dir string, index int, data []byte) (string, error) {
	path := RecordPath(dir, index)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &types.IOError{Op: "write", Path: path, Err: err}
	}

	return path, nil
}
