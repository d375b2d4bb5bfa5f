package bundled_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/bundled"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"github.com/arthur-debert/skillpack/pkg/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaths(t *testing.T) *paths.Paths {
	t.Helper()
	t.Setenv(paths.EnvHome, t.TempDir())
	p, err := paths.New()
	require.NoError(t, err)
	return p
}

func TestRepoRootExtractsOnce(t *testing.T) {
	p := newPaths(t)

	root, err := bundled.RepoRoot(p)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "packs", "starter.yaml"))

	// Extraction is skipped when the versioned root already exists.
	marker := filepath.Join(root, "marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))
	again, err := bundled.RepoRoot(p)
	require.NoError(t, err)
	assert.Equal(t, root, again)
	assert.FileExists(t, marker)
}

func TestBundledSkillsDiscoverable(t *testing.T) {
	p := newPaths(t)

	root, err := bundled.RepoRoot(p)
	require.NoError(t, err)

	found, err := skills.DiscoverLocal(root)
	require.NoError(t, err)
	assert.Contains(t, skills.IDs(found), "starter/hello-skill")
}

func TestPackPath(t *testing.T) {
	p := newPaths(t)

	path, err := bundled.PackPath(p, "starter")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	missing, err := bundled.PackPath(p, "ghost")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
