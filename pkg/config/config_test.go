package config_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"github.com/arthur-debert/skillpack/pkg/testutil"
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

func TestDefaultSinks(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sinks, err := config.DefaultSinks()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".claude", "skills"), sinks["claude"])
	assert.Equal(t, filepath.Join(home, ".codex", "skills"), sinks["codex"])
	assert.Len(t, sinks, 5)
}

func TestLoadDetailLayers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := newPaths(t)

	testutil.CreateFile(t, p.ConfigDir(), "config.yaml", `sinks:
  claude: ~/override/claude
  zed: /opt/zed/skills
`)

	repoRoot := t.TempDir()
	testutil.CreateFile(t, repoRoot, "skillpack.toml", `[sinks]
team = "/srv/team/skills"
zed = "/srv/zed/skills"
`)

	detail, err := config.LoadDetail(p, repoRoot)
	require.NoError(t, err)

	// user override expands ~ and shadows the default
	assert.Equal(t, filepath.Join(home, "override", "claude"), detail.Effective["claude"])
	// repo config shadows the user layer
	assert.Equal(t, "/srv/zed/skills", detail.Effective["zed"])
	assert.Equal(t, "/srv/team/skills", detail.Effective["team"])
	// untouched defaults survive
	assert.Equal(t, detail.Defaults["codex"], detail.Effective["codex"])
}

func TestLoadDetailWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := newPaths(t)

	detail, err := config.LoadDetail(p, "")
	require.NoError(t, err)
	assert.Empty(t, detail.Overrides)
	assert.Empty(t, detail.RepoSinks)
	assert.Equal(t, detail.Defaults, detail.Effective)
}

func TestLoadDetailBadYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := newPaths(t)
	testutil.CreateFile(t, p.ConfigDir(), "config.yaml", "sinks: [broken\n")

	_, err := config.LoadDetail(p, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestResolveSinkPath(t *testing.T) {
	cfg := &config.Config{Sinks: map[string]string{
		"claude": "/home/u/.claude/skills",
	}}

	t.Run("named_sink", func(t *testing.T) {
		path, err := config.ResolveSinkPath(cfg, "claude", "")
		require.NoError(t, err)
		assert.Equal(t, "/home/u/.claude/skills", path)
	})

	t.Run("override_wins", func(t *testing.T) {
		path, err := config.ResolveSinkPath(cfg, "claude", "/elsewhere")
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere", path)
	})

	t.Run("custom_requires_path", func(t *testing.T) {
		_, err := config.ResolveSinkPath(cfg, "custom", "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSinkUnknown))
	})

	t.Run("unknown_sink_lists_names", func(t *testing.T) {
		_, err := config.ResolveSinkPath(cfg, "zed", "")
		require.Error(t, err)
		assert.Contains(t, errors.Hint(err), "claude")
	})
}
