package tablereader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLines_HeaderAndRows(t *testing.T) {
	rows := ParseLines("Background,Face\nWhite,Smile\nBlue,Frown\n")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Background", "Face"}, rows[0])
	assert.Equal(t, []string{"White", "Smile"}, rows[1])
	assert.Equal(t, []string{"Blue", "Frown"}, rows[2])
}

func TestParseLines_TrimsLineBoundariesOnly(t *testing.T) {
	rows := ParseLines("  Background , Face \r\nWhite, Smile\r\n")

	require.Len(t, rows, 2)
	// Outer whitespace is trimmed, inner padding survives.
	assert.Equal(t, []string{"Background ", " Face"}, rows[0])
	assert.Equal(t, []string{"White", " Smile"}, rows[1])
}

func TestParseLines_CarriageReturnLineBreaks(t *testing.T) {
	rows := ParseLines("Background,Face\rWhite,Smile\rBlue,Frown\r")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Background", "Face"}, rows[0])
	assert.Equal(t, []string{"Blue", "Frown"}, rows[2])
}

func TestParseLines_MixedLineBreaks(t *testing.T) {
	rows := ParseLines("A,B\r\n1,2\r3,4\n5,6")

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"3", "4"}, rows[2])
	assert.Equal(t, []string{"5", "6"}, rows[3])
}

func TestParseLines_NoQuotingSupport(t *testing.T) {
	rows := ParseLines("Name,Quote\nBob,\"hello, world\"")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Bob", "\"hello", " world\""}, rows[1])
}

func TestParseLines_DropsTrailingBlankLines(t *testing.T) {
	rows := ParseLines("A,B\n1,2\n\n   \n")
	assert.Len(t, rows, 2)
}

func TestParseLines_KeepsInteriorBlankLines(t *testing.T) {
	rows := ParseLines("A,B\n\n1,2")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{""}, rows[1])
}

func TestParseLines_Empty(t *testing.T) {
	assert.Empty(t, ParseLines(""))
	assert.Empty(t, ParseLines("\n\n"))
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "attrs.csv", "Background,Face\nWhite,Smile\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, path, table.SourceFile)
	assert.Equal(t, []string{"Background", "Face"}, table.Header())
	assert.Equal(t, [][]string{{"White", "Smile"}}, table.DataRows())
}

func TestReadCSV_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := ReadCSV(path)
	require.Error(t, err)

	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, path, nf.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadCSV_DirectoryIsIOError(t *testing.T) {
	_, err := ReadCSV(t.TempDir())
	require.Error(t, err)

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	csvPath := writeFile(t, "attrs.txt", "A\nx\n")
	table, err := Read(csvPath, "")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Background", "Face"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"White", "Smile"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Blue", "Frown"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Read(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Background", "Face"}, table.Header())
	assert.Equal(t, [][]string{{"White", "Smile"}, {"Blue", "Frown"}}, table.DataRows())
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Traits")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Traits", "A1", &[]interface{}{"Eyes"}))
	require.NoError(t, f.SetSheetRow("Traits", "A2", &[]interface{}{"Sunglasses"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadXLSX(path, "Traits")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Eyes"}, {"Sunglasses"}}, table.Rows)

	_, err = ReadXLSX(path, "Nope")
	var ioErr *types.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestReadXLSX_NotFound(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "")

	var nf *types.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
