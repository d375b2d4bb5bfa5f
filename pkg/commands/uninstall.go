package commands

import (
	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/install"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/packs"
	"github.com/arthur-debert/skillpack/pkg/state"
)

// UninstallOptions defines the options for the UninstallPack command.
type UninstallOptions struct {
	Env
	PackArg    string
	Sinks      []string
	CustomPath string
}

// SinkUninstallResult reports the removal outcome for one sink.
type SinkUninstallResult struct {
	Sink    string `json:"sink"`
	Path    string `json:"path"`
	Removed int    `json:"removed"`
}

// UninstallResult is the output of the UninstallPack command.
type UninstallResult struct {
	Pack  string                `json:"pack"`
	Sinks []SinkUninstallResult `json:"sinks"`
}

// UninstallPack removes a pack's installed content from every selected sink
// and drops the matching state records. The pack argument may be a name, a
// manifest path, or a repo-relative path; a bare name works even after the
// manifest was deleted from the repo.
func UninstallPack(opts UninstallOptions) (*UninstallResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "UninstallPack").Str("pack", opts.PackArg).
		Strs("sinks", opts.Sinks).Msg("Executing command")

	selection, err := NewSinkSelection(opts.Sinks, opts.CustomPath)
	if err != nil {
		return nil, err
	}

	packName, err := resolvePackName(&opts.Env, opts.PackArg)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.Paths, opts.RepoRoot)
	if err != nil {
		return nil, err
	}
	sinks, err := selection.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	if err := opts.Paths.EnsureConfigDir(); err != nil {
		return nil, err
	}
	store := state.NewStore(opts.Paths.StatePath())
	file, err := store.Load()
	if err != nil {
		return nil, err
	}

	result := &UninstallResult{Pack: packName}
	for _, sink := range sinks {
		record, err := install.Uninstall(file, sink.Path, packName)
		if err != nil {
			return nil, err
		}
		if err := store.Write(file); err != nil {
			return nil, err
		}
		result.Sinks = append(result.Sinks, SinkUninstallResult{
			Sink:    sink.Name,
			Path:    sink.Path,
			Removed: len(record.InstalledPaths),
		})
		log.Info().Str("sink", sink.Name).Str("path", sink.Path).
			Int("removed", len(record.InstalledPaths)).Msg("sink uninstalled")
	}

	log.Info().Str("command", "UninstallPack").Int("sinkCount", len(result.Sinks)).Msg("Command finished")
	return result, nil
}

// resolvePackName maps the pack argument to the name recorded in state. When
// the argument resolves to a manifest the manifest's name wins; otherwise the
// bare argument is used as-is, so packs deleted from the repo can still be
// uninstalled by name.
func resolvePackName(env *Env, packArg string) (string, error) {
	packPath, _, err := locatePack(env, packArg)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrPackNotFound) {
			return packArg, nil
		}
		return "", err
	}
	pack, err := packs.Load(packPath)
	if err != nil {
		return "", err
	}
	return pack.Name, nil
}
