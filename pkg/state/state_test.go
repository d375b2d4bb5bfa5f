package state_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/state"
	"github.com/arthur-debert/skillpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(sinkPath, pack string, paths ...string) state.InstallRecord {
	return state.InstallRecord{
		Sink:           "claude",
		SinkPath:       sinkPath,
		Pack:           pack,
		PackFile:       "/repo/packs/" + pack + ".yaml",
		Prefix:         pack,
		Sep:            "__",
		InstalledPaths: paths,
		InstalledAt:    "2026-08-27T10:00:00Z",
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))

	file, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, state.CurrentVersion, file.Version)
	assert.Empty(t, file.Installs)
}

func TestWriteLoadRoundTrip(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))

	file := state.NewFile()
	file.Upsert(sampleRecord("/sink", "demo", "/sink/demo__a"))
	require.NoError(t, store.Write(file))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Installs, 1)
	assert.Equal(t, "demo", loaded.Installs[0].Pack)
	assert.Equal(t, []string{"/sink/demo__a"}, loaded.Installs[0].InstalledPaths)
}

func TestWriteCreatesParentDirAndValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "state.json")
	store := state.NewStore(path)

	require.NoError(t, store.Write(state.NewFile()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &raw))
	assert.EqualValues(t, 1, raw["version"])
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := state.NewStore(filepath.Join(dir, "state.json"))
	require.NoError(t, store.Write(state.NewFile()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := state.NewStore(filepath.Join(dir, "state.json"))

	first := state.NewFile()
	first.Upsert(sampleRecord("/sink", "old", "/sink/old__a"))
	require.NoError(t, store.Write(first))

	second := state.NewFile()
	second.Upsert(sampleRecord("/sink", "new", "/sink/new__a"))
	require.NoError(t, store.Write(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Installs, 1)
	assert.Equal(t, "new", loaded.Installs[0].Pack)
}

func TestLoadCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "state.json", "{not json")
	store := state.NewStore(path)

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateWrite))
}

func TestFindRecordAndOwnsPath(t *testing.T) {
	file := state.NewFile()
	file.Upsert(sampleRecord("/sink", "demo", "/sink/demo__a", "/sink/demo__b"))
	file.Upsert(sampleRecord("/other", "demo", "/other/demo__a"))

	assert.Equal(t, 0, file.FindRecord("/sink", "demo"))
	assert.Equal(t, 1, file.FindRecord("/other", "demo"))
	assert.Equal(t, -1, file.FindRecord("/sink", "ghost"))

	assert.True(t, file.OwnsPath("/sink", "demo", "/sink/demo__a"))
	assert.False(t, file.OwnsPath("/sink", "demo", "/sink/other__a"))
	assert.False(t, file.OwnsPath("/sink", "ghost", "/sink/demo__a"))
}

func TestUpsertReplacesInPlace(t *testing.T) {
	file := state.NewFile()
	file.Upsert(sampleRecord("/sink", "demo", "/sink/demo__a"))
	file.Upsert(sampleRecord("/sink", "demo", "/sink/demo__b"))

	require.Len(t, file.Installs, 1)
	assert.Equal(t, []string{"/sink/demo__b"}, file.Installs[0].InstalledPaths)
}

func TestRemove(t *testing.T) {
	file := state.NewFile()
	file.Upsert(sampleRecord("/sink", "demo", "/sink/demo__a"))

	record, ok := file.Remove("/sink", "demo")
	assert.True(t, ok)
	assert.Equal(t, "demo", record.Pack)
	assert.Empty(t, file.Installs)

	_, ok = file.Remove("/sink", "demo")
	assert.False(t, ok)
}
