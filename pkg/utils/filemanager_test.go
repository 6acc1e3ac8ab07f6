package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOutputDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "nested")
	fm := NewFileManager(dir)

	require.NoError(t, fm.EnsureOutputDir())
	require.NoError(t, fm.EnsureOutputDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Error(t, NewFileManager(path).EnsureOutputDir())
}

func TestStagingCommit(t *testing.T) {
	out := t.TempDir()
	fm := NewFileManager(out)

	require.NoError(t, os.WriteFile(filepath.Join(out, "0.json"), []byte("old"), 0o644))

	staging, err := fm.NewStagingDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(staging), ".staging-"))

	require.NoError(t, os.WriteFile(filepath.Join(staging, "0.json"), []byte("new0"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "1.json"), []byte("new1"), 0o644))

	moved, err := fm.Commit(staging)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	got, err := os.ReadFile(filepath.Join(out, "0.json"))
	require.NoError(t, err)
	assert.Equal(t, "new0", string(got))
	assert.False(t, FileExists(staging))
}

func TestDiscardStaging(t *testing.T) {
	out := t.TempDir()
	fm := NewFileManager(out)

	staging, err := fm.NewStagingDir()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(staging, "0.json"), []byte("x"), 0o644))

	require.NoError(t, fm.DiscardStaging(staging))
	assert.False(t, FileExists(staging))

	assert.Error(t, fm.DiscardStaging(out))
	assert.True(t, FileExists(out))
}

func TestResolveDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "description.txt")
	require.NoError(t, os.WriteFile(path, []byte("example project\n\nfor making erc721s"), 0o644))

	got, err := ResolveDescription(path)
	require.NoError(t, err)
	assert.Equal(t, "example project\n\nfor making erc721s", got)

	got, err = ResolveDescription("just some words")
	require.NoError(t, err)
	assert.Equal(t, "just some words", got)

	dir := t.TempDir()
	got, err = ResolveDescription(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestWriteSummaryLog(t *testing.T) {
	out := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	path, err := WriteSummaryLog(ProcessingSummary{
		RunID:          "run-1",
		StartTime:      start,
		EndTime:        start.Add(2 * time.Second),
		Collection:     "My NFT",
		Traits:         []string{"Background", "Face"},
		RecordsWritten: 3,
	}, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "generate_summary_20240115_143002.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Records Written: 3")
	assert.Contains(t, string(data), "  Background\n")
}
