package commands

import (
	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/arthur-debert/skillpack/pkg/install"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/resolve"
	"github.com/arthur-debert/skillpack/pkg/state"
)

// InstallOptions defines the options for the InstallPack command.
type InstallOptions struct {
	Env
	PackArg string
	// Sinks are the selected sink names, custom included.
	Sinks      []string
	CustomPath string
}

// SinkInstallResult reports the reconciliation outcome for one sink.
type SinkInstallResult struct {
	Sink    string `json:"sink"`
	Path    string `json:"path"`
	Skills  int    `json:"skills"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Removed int    `json:"removed"`
}

// InstallResult is the output of the InstallPack command.
type InstallResult struct {
	Pack     string              `json:"pack"`
	PackFile string              `json:"pack_file"`
	Sinks    []SinkInstallResult `json:"sinks"`
}

// InstallPack resolves a pack once and installs it into every selected
// sink. State is persisted after each sink so a failure partway through
// leaves the completed sinks recorded.
func InstallPack(opts InstallOptions) (*InstallResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "InstallPack").Str("pack", opts.PackArg).
		Strs("sinks", opts.Sinks).Msg("Executing command")

	selection, err := NewSinkSelection(opts.Sinks, opts.CustomPath)
	if err != nil {
		return nil, err
	}

	packPath, packRoot, err := locatePack(&opts.Env, opts.PackArg)
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

	resolved, err := resolve.ResolvePack(packRoot, packPath, opts.cacheDir(), opts.resolver())
	if err != nil {
		return nil, err
	}
	pack := resolved.Pack
	if err := resolve.DetectCollisions(resolved.FinalSkills, pack.InstallPrefix, pack.InstallSep); err != nil {
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

	result := &InstallResult{Pack: pack.Name, PackFile: resolved.PackFile}
	for _, sink := range sinks {
		var oldPaths []string
		if idx := file.FindRecord(sink.Path, pack.Name); idx >= 0 {
			oldPaths = file.Installs[idx].InstalledPaths
		}

		record, err := install.Install(resolved, sink.Name, sink.Path, file)
		if err != nil {
			return nil, err
		}
		if err := store.Write(file); err != nil {
			return nil, err
		}

		added, updated, removed := install.DiffCounts(oldPaths, record.InstalledPaths)
		result.Sinks = append(result.Sinks, SinkInstallResult{
			Sink:    sink.Name,
			Path:    sink.Path,
			Skills:  len(record.InstalledPaths),
			Added:   added,
			Updated: updated,
			Removed: removed,
		})
		log.Info().Str("sink", sink.Name).Str("path", sink.Path).
			Int("added", added).Int("updated", updated).Int("removed", removed).
			Msg("sink installed")
	}

	log.Info().Str("command", "InstallPack").Int("sinkCount", len(result.Sinks)).Msg("Command finished")
	return result, nil
}
