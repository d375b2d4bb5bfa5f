package install_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/install"
	"github.com/arthur-debert/skillpack/pkg/packs"
	"github.com/arthur-debert/skillpack/pkg/resolve"
	"github.com/arthur-debert/skillpack/pkg/state"
	"github.com/arthur-debert/skillpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolvedPack builds a resolved pack over real skill directories, skipping
// manifest loading and discovery.
func resolvedPack(t *testing.T, name string, flatten bool, ids ...string) *resolve.Pack {
	t.Helper()

	src := t.TempDir()
	var final []resolve.Skill
	for _, id := range ids {
		dir := filepath.Join(src, filepath.FromSlash(id))
		testutil.CreateFile(t, dir, "SKILL.md", "# "+id)
		final = append(final, resolve.Skill{ID: id, Dir: dir, Source: resolve.SourceLocal})
	}

	return &resolve.Pack{
		Pack: &packs.Pack{
			Name:           name,
			InstallPrefix:  name,
			InstallSep:     "__",
			InstallFlatten: flatten,
		},
		PackFile:    filepath.Join(src, "pack.yaml"),
		FinalSkills: final,
	}
}

func TestInstallCopiesSkills(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()
	resolved := resolvedPack(t, "demo", true, "a/b", "c")

	record, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(sink, "demo__a__b"),
		filepath.Join(sink, "demo__c"),
	}, record.InstalledPaths)
	assert.FileExists(t, filepath.Join(sink, "demo__a__b", "SKILL.md"))
	assert.FileExists(t, filepath.Join(sink, "demo__c", "SKILL.md"))
	assert.Equal(t, 0, file.FindRecord(sink, "demo"))
}

func TestInstallHierarchicalLayout(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()
	resolved := resolvedPack(t, "demo", false, "a/b")

	record, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(sink, "demo__a", "b")}, record.InstalledPaths)
	assert.FileExists(t, filepath.Join(sink, "demo__a", "b", "SKILL.md"))

	// Uninstall prunes the intermediate dir too.
	_, err = install.Uninstall(file, sink, "demo")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(sink, "demo__a"))
}

func TestInstallIsIdempotent(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()
	resolved := resolvedPack(t, "demo", true, "a/b", "c")

	first, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)
	second, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)

	assert.Equal(t, first.InstalledPaths, second.InstalledPaths)
	added, updated, removed := install.DiffCounts(first.InstalledPaths, second.InstalledPaths)
	assert.Equal(t, 0, added)
	assert.Equal(t, len(second.InstalledPaths), updated)
	assert.Equal(t, 0, removed)
	require.Len(t, file.Installs, 1)
}

func TestInstallRemovesStalePaths(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()

	old := resolvedPack(t, "demo", true, "old")
	_, err := install.Install(old, "claude", sink, file)
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(sink, "demo__old"))

	updated := resolvedPack(t, "demo", true, "new")
	record, err := install.Install(updated, "claude", sink, file)
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(sink, "demo__old"))
	assert.DirExists(t, filepath.Join(sink, "demo__new"))
	assert.Equal(t, []string{filepath.Join(sink, "demo__new")}, record.InstalledPaths)
}

func TestInstallRefusesUnownedDestination(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()
	resolved := resolvedPack(t, "demo", true, "a")

	// Pre-existing directory not recorded in any state record.
	intruder := filepath.Join(sink, "demo__a")
	testutil.CreateFile(t, intruder, "precious.txt", "user data")

	_, err := install.Install(resolved, "claude", sink, file)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestNotOwned))

	// The unowned directory is untouched.
	assert.FileExists(t, filepath.Join(intruder, "precious.txt"))
	assert.Empty(t, file.Installs)
}

func TestInstallOverwritesOwnedDestination(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()

	resolved := resolvedPack(t, "demo", true, "a")
	_, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)

	// Reinstall with changed content replaces the owned directory.
	changed := resolvedPack(t, "demo", true, "a")
	testutil.CreateFile(t, changed.FinalSkills[0].Dir, "extra.md", "more")
	_, err = install.Install(changed, "claude", sink, file)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(sink, "demo__a", "extra.md"))
}

func TestInstallDereferencesSymlinks(t *testing.T) {
	sink := t.TempDir()
	file := state.NewFile()

	src := t.TempDir()
	target := testutil.CreateFile(t, src, "real/data.txt", "payload")
	skillDir := testutil.CreateDir(t, src, "skill")
	testutil.CreateFile(t, skillDir, "SKILL.md", "# Skill")
	testutil.CreateSymlink(t, target, filepath.Join(skillDir, "link.txt"))

	resolved := &resolve.Pack{
		Pack:        &packs.Pack{Name: "demo", InstallPrefix: "demo", InstallSep: "__", InstallFlatten: true},
		FinalSkills: []resolve.Skill{{ID: "skill", Dir: skillDir, Source: resolve.SourceLocal}},
	}
	_, err := install.Install(resolved, "claude", sink, file)
	require.NoError(t, err)

	copied := filepath.Join(sink, "demo__skill", "link.txt")
	info, err := os.Lstat(copied)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink, "copied entry must not be a symlink")
	content, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestInstallRejectsPathOutsideSink(t *testing.T) {
	sink := t.TempDir()
	outside := testutil.CreateDir(t, t.TempDir(), "elsewhere")

	file := state.NewFile()
	file.Upsert(state.InstallRecord{
		Sink:           "claude",
		SinkPath:       sink,
		Pack:           "demo",
		InstalledPaths: []string{outside},
	})

	resolved := resolvedPack(t, "demo", true, "fresh")
	_, err := install.Install(resolved, "claude", sink, file)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideSink))
	assert.DirExists(t, outside)
}

func TestUninstall(t *testing.T) {
	t.Run("removes_paths_and_record", func(t *testing.T) {
		sink := t.TempDir()
		file := state.NewFile()
		resolved := resolvedPack(t, "demo", true, "a", "b")
		_, err := install.Install(resolved, "claude", sink, file)
		require.NoError(t, err)

		record, err := install.Uninstall(file, sink, "demo")
		require.NoError(t, err)
		assert.Len(t, record.InstalledPaths, 2)
		assert.NoDirExists(t, filepath.Join(sink, "demo__a"))
		assert.NoDirExists(t, filepath.Join(sink, "demo__b"))
		assert.Empty(t, file.Installs)
	})

	t.Run("not_installed_fails", func(t *testing.T) {
		file := state.NewFile()
		_, err := install.Uninstall(file, t.TempDir(), "ghost")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackNotInstalled))
	})

	t.Run("tolerates_already_missing_paths", func(t *testing.T) {
		sink := t.TempDir()
		file := state.NewFile()
		resolved := resolvedPack(t, "demo", true, "a")
		_, err := install.Install(resolved, "claude", sink, file)
		require.NoError(t, err)

		require.NoError(t, os.RemoveAll(filepath.Join(sink, "demo__a")))
		_, err = install.Uninstall(file, sink, "demo")
		require.NoError(t, err)
	})
}

func TestDiffCounts(t *testing.T) {
	added, updated, removed := install.DiffCounts(
		[]string{"/s/a", "/s/b"},
		[]string{"/s/b", "/s/c", "/s/d"},
	)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, removed)
}
