// Package paths provides centralized path handling for skillpack.
// It implements XDG Base Directory compliance with a SKILLPACK_HOME
// escape hatch that pins every skillpack-owned path under one directory.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/skillpack/pkg/errors"
)

// Environment variable names
const (
	// EnvHome pins config, state and cache under a single directory
	EnvHome = "SKILLPACK_HOME"

	// EnvRepoRoot is the primary environment variable for the skills repo location
	EnvRepoRoot = "SKILLPACK_ROOT"

	// EnvCacheDir overrides the git cache directory
	EnvCacheDir = "SKILLPACK_CACHE_DIR"
)

// Default directories and files
// IMPORTANT: these constants define skillpack's on-disk protocol and are NOT
// user-configurable. SkillFileName in particular is the fixed marker that
// makes a directory a skill.
const (
	// AppDirName is the directory name for skillpack-specific files
	AppDirName = "skillpack"

	// SkillFileName marks a directory as a skill
	SkillFileName = "SKILL.md"

	// SkillsDirName is the skills tree inside a repo root
	SkillsDirName = "skills"

	// PacksDirName is the pack manifest directory inside a repo root
	PacksDirName = "packs"

	// ConfigFileName is the sink configuration file
	ConfigFileName = "config.yaml"

	// RepoConfigFileName is the optional repo-level defaults file
	RepoConfigFileName = "skillpack.toml"

	// StateFileName is the durable install state file
	StateFileName = "state.json"

	// CacheDirName is the git clone cache directory
	CacheDirName = "cache"

	// BundledDirName holds extracted bundled content, versioned
	BundledDirName = "bundled"
)

// Paths provides centralized path management for skillpack
type Paths struct {
	configDir string
	cacheDir  string
}

// New resolves the skillpack directories from the environment.
// SKILLPACK_HOME wins over XDG locations when set.
func New() (*Paths, error) {
	if home := os.Getenv(EnvHome); home != "" {
		abs, err := MakeAbsolute(home)
		if err != nil {
			return nil, err
		}
		return &Paths{
			configDir: abs,
			cacheDir:  filepath.Join(abs, CacheDirName),
		}, nil
	}

	configDir := filepath.Join(xdg.ConfigHome, AppDirName)
	cacheDir := filepath.Join(xdg.CacheHome, AppDirName, CacheDirName)
	if override := os.Getenv(EnvCacheDir); override != "" {
		abs, err := MakeAbsolute(override)
		if err != nil {
			return nil, err
		}
		cacheDir = abs
	}

	return &Paths{configDir: configDir, cacheDir: cacheDir}, nil
}

// ConfigDir returns the directory holding config, state and bundled content
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the sink configuration file path
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// StatePath returns the install state file path
func (p *Paths) StatePath() string {
	return filepath.Join(p.configDir, StateFileName)
}

// CacheDir returns the git clone cache directory
func (p *Paths) CacheDir() string {
	return p.cacheDir
}

// BundledRoot returns the extraction root for the bundled repo of a given version
func (p *Paths) BundledRoot(version string) string {
	return filepath.Join(p.configDir, BundledDirName, version)
}

// EnsureConfigDir creates the config directory if it does not exist
func (p *Paths) EnsureConfigDir() error {
	if err := os.MkdirAll(p.configDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create config dir %s", p.configDir)
	}
	return nil
}

// MakeAbsolute resolves a path against the current working directory
func MakeAbsolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
	}
	return filepath.Join(cwd, path), nil
}

// DiscoverRepoRoot walks up from start looking for a directory containing
// skills/ or packs/. Returns "" when no marker is found.
func DiscoverRepoRoot(start string) string {
	dir := filepath.Clean(start)
	for {
		if isRepoRoot(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	for _, marker := range []string{SkillsDirName, PacksDirName} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
