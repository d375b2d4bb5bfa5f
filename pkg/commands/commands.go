// Package commands implements the verb layer of the CLI. Each command takes
// an Options struct, runs against the core packages, and returns a plain
// result struct that the ui package can render as pretty, plain, or JSON
// output.
package commands

import (
	"github.com/arthur-debert/skillpack/pkg/bundled"
	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/gitrepo"
	"github.com/arthur-debert/skillpack/pkg/packs"
	"github.com/arthur-debert/skillpack/pkg/paths"
)

// Env carries the execution environment shared by every command: where the
// skill repo lives, where skillpack keeps its own files, and how remote
// imports are fetched.
type Env struct {
	// RepoRoot is the skill repo the command operates on. May be empty when
	// the command is run outside a repo.
	RepoRoot string
	Paths    *paths.Paths
	// CacheDir overrides the default git clone cache location when set.
	CacheDir string
	// Resolver fetches remote imports. Defaults to the git CLI resolver.
	Resolver gitrepo.Resolver
}

func (e *Env) cacheDir() string {
	if e.CacheDir != "" {
		return e.CacheDir
	}
	return e.Paths.CacheDir()
}

func (e *Env) resolver() gitrepo.Resolver {
	if e.Resolver != nil {
		return e.Resolver
	}
	return gitrepo.NewResolver()
}

// locatePack resolves a pack argument against the repo first and the bundled
// content second. It returns the manifest path together with the repo root
// the manifest's include patterns should resolve against, which for bundled
// packs is the extracted bundled repo.
func locatePack(env *Env, packArg string) (packPath, packRoot string, err error) {
	path, rerr := packs.ResolvePath(env.RepoRoot, packArg)
	if rerr == nil {
		return path, env.RepoRoot, nil
	}
	if !errors.IsErrorCode(rerr, errors.ErrPackNotFound) {
		return "", "", rerr
	}

	bundledPath, berr := bundled.PackPath(env.Paths, packArg)
	if berr != nil {
		return "", "", berr
	}
	if bundledPath == "" {
		return "", "", rerr
	}
	root, berr := bundled.RepoRoot(env.Paths)
	if berr != nil {
		return "", "", berr
	}
	return bundledPath, root, nil
}

// SinkSelection is a validated set of install destinations, built from the
// sink flags before any filesystem work starts.
type SinkSelection struct {
	Names      []string
	CustomPath string
}

// NewSinkSelection validates the sink flags: at least one sink, custom only
// on its own and only with --path, and --path never spread across several
// sinks.
func NewSinkSelection(names []string, customPath string) (*SinkSelection, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no sink selected").
			WithHint("select at least one sink, e.g. --claude, or --custom --path DIR")
	}

	custom := false
	for _, name := range names {
		if name == config.SinkCustom {
			custom = true
		}
	}
	if custom && len(names) > 1 {
		return nil, errors.New(errors.ErrInvalidInput, "--custom cannot be combined with named sinks")
	}
	if custom && customPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "--custom requires --path").
			WithHint("pass the destination directory with --path DIR")
	}
	if customPath != "" && len(names) > 1 {
		return nil, errors.New(errors.ErrInvalidInput, "--path applies to a single sink only")
	}

	return &SinkSelection{Names: names, CustomPath: customPath}, nil
}

// Sink is a selected destination with its resolved filesystem path.
type Sink struct {
	Name string `json:"sink"`
	Path string `json:"path"`
}

// Resolve maps each selected sink name to its configured path. The custom
// path override applies to the single selected sink.
func (s *SinkSelection) Resolve(cfg *config.Config) ([]Sink, error) {
	out := make([]Sink, 0, len(s.Names))
	for _, name := range s.Names {
		path, err := config.ResolveSinkPath(cfg, name, s.CustomPath)
		if err != nil {
			return nil, err
		}
		out = append(out, Sink{Name: name, Path: path})
	}
	return out, nil
}
