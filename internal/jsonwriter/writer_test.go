package jsonwriter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() types.Record {
	return types.Record{
		Name:        "name #0",
		Description: "example project",
		Image:       "https://example.com/assets/0.png",
		Attributes: []types.Attribute{
			{TraitType: "Background", Value: "White"},
			{TraitType: "Face", Value: "Smile"},
		},
	}
}

func TestMarshal_CompactKeyOrder(t *testing.T) {
	data, err := Marshal(sampleRecord(), DefaultOptions())
	require.NoError(t, err)

	want := `{"name":"name #0","description":"example project","image":"https://example.com/assets/0.png",` +
		`"attributes":[{"trait_type":"Background","value":"White"},{"trait_type":"Face","value":"Smile"}]}`
	assert.Equal(t, want, string(data))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	rec := sampleRecord()
	rec.Description = "a <b> & c"

	data, err := Marshal(rec, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"a <b> & c"`)
}

func TestMarshal_Indent(t *testing.T) {
	data, err := Marshal(sampleRecord(), Options{Indent: "  "})
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"name\": \"name #0\",")
	assert.NotEqual(t, byte('\n'), data[len(data)-1])
}

func TestMarshal_EmptyAttributes(t *testing.T) {
	data, err := Marshal(types.Record{Name: "x"}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"attributes":[]`)
}

func TestRoundTrip_PreservesAttributeOrder(t *testing.T) {
	rec := sampleRecord()
	rec.Attributes = append(rec.Attributes,
		types.Attribute{TraitType: "Eyes", Value: "Sunglasses"},
		types.Attribute{TraitType: "Shirt", Value: "Black"},
	)

	data, err := Marshal(rec, DefaultOptions())
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestWriteRecord_Overwrites(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteRecord(dir, 7, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "7.json"), path)

	_, err = WriteRecord(dir, 7, []byte("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestWriteRecord_MissingDir(t *testing.T) {
	_, err := WriteRecord(filepath.Join(t.TempDir(), "nope"), 0, []byte("{}"))
	require.Error(t, err)

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
}
