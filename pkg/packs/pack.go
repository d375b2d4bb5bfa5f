// Package packs loads and validates pack manifests. A pack names a set of
// skills (local patterns and/or remote imports) plus install naming rules.
package packs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"gopkg.in/yaml.v3"
)

// DefaultSep is the separator used in install names when the manifest does
// not set install.sep.
const DefaultSep = "__"

// ImportSpec references skills in a remote, version-controlled tree.
type ImportSpec struct {
	Repo    string   `yaml:"repo"`
	Ref     string   `yaml:"ref,omitempty"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// InstallSpec is the optional install naming section of a manifest.
type InstallSpec struct {
	Prefix  *string `yaml:"prefix,omitempty"`
	Sep     *string `yaml:"sep,omitempty"`
	Flatten *bool   `yaml:"flatten,omitempty"`
}

type packFile struct {
	Name    string       `yaml:"name"`
	Include []string     `yaml:"include"`
	Exclude []string     `yaml:"exclude,omitempty"`
	Imports []ImportSpec `yaml:"imports,omitempty"`
	Install *InstallSpec `yaml:"install,omitempty"`
}

// Pack is a validated manifest with install naming defaults applied.
type Pack struct {
	Name           string
	Include        []string
	Exclude        []string
	Imports        []ImportSpec
	InstallPrefix  string
	InstallSep     string
	InstallFlatten bool
}

// Load reads, parses and validates a pack manifest.
func Load(packPath string) (*Pack, error) {
	content, err := os.ReadFile(packPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read pack file: %s", packPath)
	}

	var parsed packFile
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "failed to parse pack file: %s", packPath)
	}
	if err := validate(&parsed); err != nil {
		return nil, err
	}

	pack := &Pack{
		Name:           parsed.Name,
		Include:        parsed.Include,
		Exclude:        parsed.Exclude,
		Imports:        parsed.Imports,
		InstallPrefix:  parsed.Name,
		InstallSep:     DefaultSep,
		InstallFlatten: false,
	}
	if install := parsed.Install; install != nil {
		if install.Prefix != nil {
			pack.InstallPrefix = *install.Prefix
		}
		if install.Sep != nil {
			pack.InstallSep = *install.Sep
		}
		if install.Flatten != nil {
			pack.InstallFlatten = *install.Flatten
		}
	}
	return pack, nil
}

func validate(pack *packFile) error {
	if strings.TrimSpace(pack.Name) == "" {
		return errors.New(errors.ErrManifestInvalid, "pack name is required").
			WithHint("Set name: <pack-name> in the pack file")
	}
	if len(pack.Include) == 0 && len(pack.Imports) == 0 {
		return errors.New(errors.ErrManifestInvalid, "pack must include local skills or imports").
			WithHint("Add include: or imports: to the pack file")
	}
	for _, imp := range pack.Imports {
		if strings.TrimSpace(imp.Repo) == "" {
			return errors.New(errors.ErrManifestInvalid, "import repo is required").
				WithHint("Set repo: <git-url> in imports")
		}
		if len(imp.Include) == 0 {
			return errors.New(errors.ErrManifestInvalid, "import include must be non-empty").
				WithHint("Add include: patterns under the import")
		}
	}
	return nil
}

// ResolvePath turns a pack argument into a manifest path. The argument may be
// a literal path, a repo-relative path, or a bare pack name looked up under
// repoRoot/packs/<name>.yaml.
func ResolvePath(repoRoot, packArg string) (string, error) {
	if _, err := os.Stat(packArg); err == nil {
		return packArg, nil
	}
	if !filepath.IsAbs(packArg) {
		repoCandidate := filepath.Join(repoRoot, packArg)
		if _, err := os.Stat(repoCandidate); err == nil {
			return repoCandidate, nil
		}
	}
	if strings.HasSuffix(packArg, ".yaml") || strings.HasSuffix(packArg, ".yml") {
		return "", errors.Newf(errors.ErrPackNotFound, "pack file not found: %s", packArg).
			WithHint("Check the path or run skillpack packs --root <repo> to list packs")
	}
	packPath := filepath.Join(repoRoot, paths.PacksDirName, packArg+".yaml")
	if _, err := os.Stat(packPath); err != nil {
		return "", errors.Newf(errors.ErrPackNotFound, "pack not found: %s", packArg).
			WithHint("Expected " + packPath + ". Run skillpack packs --root <repo> to list packs")
	}
	return packPath, nil
}

// Summary is a lightweight listing entry for a pack manifest.
type Summary struct {
	Name string
	Path string
}

// ListDir returns summaries for the *.yaml manifests under packsDir, with
// Path shown relative to repoRoot when possible. A missing directory yields
// an empty list.
func ListDir(packsDir, repoRoot string) ([]Summary, error) {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read packs dir: %s", packsDir)
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(packsDir, entry.Name())
		pack, err := Load(path)
		if err != nil {
			return nil, err
		}
		display := path
		if repoRoot != "" {
			if rel, err := filepath.Rel(repoRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
				display = rel
			}
		}
		out = append(out, Summary{Name: pack.Name, Path: display})
	}
	return out, nil
}
