package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func sampleEntries() []Entry {
	return []Entry{
		{Name: "lamp_powers_on", Path: "tests/lamp.yaml", Tags: []string{"redstone", "smoke"}},
		{Name: "copper_waxing", Path: "tests/copper.yaml", Tags: []string{"interaction"}},
		{Name: "door_opens", Path: "tests/door.yaml", Tags: []string{"redstone"}},
		{Name: "untagged", Path: "tests/untagged.yaml"},
	}
}

func TestRebuildAndCount(t *testing.T) {
	ix := openTestIndex(t)
	require.NoError(t, ix.Rebuild(sampleEntries()))

	n, err := ix.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRebuild_ReplacesContents(t *testing.T) {
	ix := openTestIndex(t)
	require.NoError(t, ix.Rebuild(sampleEntries()))
	require.NoError(t, ix.Rebuild([]Entry{
		{Name: "only", Path: "tests/only.yaml", Tags: []string{"new"}},
	}))

	names, err := ix.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, names)

	tags, err := ix.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, tags, "old tags are cascaded away")
}

func TestRebuild_DuplicateNameFails(t *testing.T) {
	ix := openTestIndex(t)
	err := ix.Rebuild([]Entry{
		{Name: "dup", Path: "a.yaml"},
		{Name: "dup", Path: "b.yaml"},
	})
	require.Error(t, err, "test names are the primary key")

	// The failed rebuild must not leave partial contents behind.
	n, err := ix.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPathsByTags(t *testing.T) {
	ix := openTestIndex(t)
	require.NoError(t, ix.Rebuild(sampleEntries()))

	paths, err := ix.PathsByTags([]string{"redstone"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/door.yaml", "tests/lamp.yaml"}, paths)

	paths, err = ix.PathsByTags([]string{"redstone", "interaction"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/copper.yaml", "tests/door.yaml", "tests/lamp.yaml"}, paths,
		"multiple tags match with OR, without duplicates")

	paths, err = ix.PathsByTags([]string{"missing"})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestPathsByTags_EmptyMeansAll(t *testing.T) {
	ix := openTestIndex(t)
	require.NoError(t, ix.Rebuild(sampleEntries()))

	paths, err := ix.PathsByTags(nil)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
}

func TestNamesAndTagsSorted(t *testing.T) {
	ix := openTestIndex(t)
	require.NoError(t, ix.Rebuild(sampleEntries()))

	names, err := ix.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"copper_waxing", "door_opens", "lamp_powers_on", "untagged"}, names)

	tags, err := ix.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"interaction", "redstone", "smoke"}, tags)
}

func TestOpen_CreatesFileAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	ix, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, ix.Rebuild(sampleEntries()))
	require.NoError(t, ix.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
