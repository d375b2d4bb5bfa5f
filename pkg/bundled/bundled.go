// Package bundled ships a starter repo (packs/ + skills/) inside the binary
// and extracts it under the config dir, once per released version. Bundled
// packs resolve and install exactly like packs from a user repo.
package bundled

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/skillpack/internal/version"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/paths"
)

//go:embed assets/packs assets/skills
var assets embed.FS

// RepoRoot extracts the bundled repo if needed and returns its root, which
// has the same skills/ + packs/ layout as a user repo.
func RepoRoot(p *paths.Paths) (string, error) {
	root := p.BundledRoot(version.Version)
	if err := ensureExtracted(root); err != nil {
		return "", err
	}
	return root, nil
}

// PackPath returns the manifest path for a bundled pack name, or "" when no
// bundled pack has that name.
func PackPath(p *paths.Paths, packName string) (string, error) {
	root, err := RepoRoot(p)
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, paths.PacksDirName, packName+".yaml")
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func ensureExtracted(root string) error {
	if _, err := os.Stat(root); err == nil {
		return nil
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create bundled root %s", root)
	}
	return fs.WalkDir(assets, "assets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("assets", path)
		if err != nil || rel == "." {
			return err
		}
		dest := filepath.Join(root, rel)
		if d.IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dest)
			}
			return nil
		}
		content, err := assets.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to read bundled asset %s", path)
		}
		if err := os.WriteFile(dest, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest)
		}
		return nil
	})
}
