package skills_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/skills"
	"github.com/arthur-debert/skillpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverLocal(t *testing.T) {
	t.Run("finds_leaf_skills", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "skills/general/writing/SKILL.md", "# Writing")
		testutil.CreateFile(t, root, "skills/coding/go/SKILL.md", "# Go")
		testutil.CreateFile(t, root, "skills/coding/go/reference.md", "extra content")

		found, err := skills.DiscoverLocal(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"coding/go", "general/writing"}, skills.IDs(found))
		assert.Equal(t, filepath.Join(root, "skills", "coding", "go"), found[0].Dir)
	})

	t.Run("leaf_only_nested_skill_hides_parent", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "skills/a/SKILL.md", "x")
		testutil.CreateFile(t, root, "skills/a/b/SKILL.md", "y")

		found, err := skills.DiscoverLocal(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"a/b"}, skills.IDs(found))
	})

	t.Run("missing_skills_root_fails", func(t *testing.T) {
		root := t.TempDir()

		_, err := skills.DiscoverLocal(root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSkillsRootMissing))
	})

	t.Run("root_level_skill_md_fails", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "skills/SKILL.md", "x")

		_, err := skills.DiscoverLocal(root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSkillLayoutInvalid))
		assert.Contains(t, err.Error(), "skills/SKILL.md")
	})
}

func TestDiscoverRemote(t *testing.T) {
	t.Run("absent_tree_is_empty", func(t *testing.T) {
		found, err := skills.DiscoverRemote(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("root_level_skill_md_skipped", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "SKILL.md", "x")
		testutil.CreateFile(t, root, "alpha/SKILL.md", "y")

		found, err := skills.DiscoverRemote(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha"}, skills.IDs(found))
	})
}

func TestDiscoverSymlinks(t *testing.T) {
	t.Run("directory_symlink_aliases_a_skill", func(t *testing.T) {
		root := t.TempDir()
		target := testutil.CreateDir(t, root, "shared-skill")
		testutil.CreateFile(t, root, "shared-skill/SKILL.md", "# Shared")
		testutil.CreateDir(t, root, "skills")
		testutil.CreateSymlink(t, target, filepath.Join(root, "skills", "alias"))

		found, err := skills.DiscoverLocal(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"alias"}, skills.IDs(found))
	})

	t.Run("file_symlink_without_dir_symlink_fails", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "target/SKILL.md", "x")
		testutil.CreateDir(t, root, "skills/fake")
		testutil.CreateSymlink(t,
			filepath.Join(root, "target", "SKILL.md"),
			filepath.Join(root, "skills", "fake", "SKILL.md"))

		_, err := skills.DiscoverLocal(root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSkillLayoutInvalid))
		assert.Contains(t, err.Error(), "SKILL.md is a symlink")
	})

	t.Run("two_aliases_of_one_target_are_both_skills", func(t *testing.T) {
		root := t.TempDir()
		target := testutil.CreateDir(t, root, "shared-skill")
		testutil.CreateFile(t, root, "shared-skill/SKILL.md", "# Shared")
		testutil.CreateDir(t, root, "skills")
		testutil.CreateSymlink(t, target, filepath.Join(root, "skills", "alias-one"))
		testutil.CreateSymlink(t, target, filepath.Join(root, "skills", "alias-two"))

		found, err := skills.DiscoverLocal(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"alias-one", "alias-two"}, skills.IDs(found))
	})

	t.Run("symlink_cycle_terminates", func(t *testing.T) {
		root := t.TempDir()
		testutil.CreateFile(t, root, "skills/loop/SKILL.md", "x")
		testutil.CreateSymlink(t,
			filepath.Join(root, "skills"),
			filepath.Join(root, "skills", "loop", "back"))

		found, err := skills.DiscoverLocal(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"loop"}, skills.IDs(found))
	})
}

func TestSplitID(t *testing.T) {
	head, rest := skills.SplitID("a/b/c")
	assert.Equal(t, "a", head)
	assert.Equal(t, "b/c", rest)

	head, rest = skills.SplitID("alpha")
	assert.Equal(t, "alpha", head)
	assert.Equal(t, "", rest)
}

func TestIDsSortsCopies(t *testing.T) {
	list := []skills.Skill{{ID: "b"}, {ID: "a"}}
	assert.Equal(t, []string{"a", "b"}, skills.IDs(list))
	// input order untouched
	assert.Equal(t, "b", list[0].ID)
}

func TestDiscoverIgnoresNonRegularSkillMd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "skills", "odd", "SKILL.md"), 0755))
	testutil.CreateFile(t, root, "skills/ok/SKILL.md", "x")

	found, err := skills.DiscoverLocal(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, skills.IDs(found))
}
