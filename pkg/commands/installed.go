package commands

import (
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/state"
)

// InstalledOptions defines the options for the ListInstalled command.
type InstalledOptions struct {
	Env
	// Sinks filters the listing to the named sinks. Empty means all.
	Sinks []string
	// CustomPath additionally narrows custom entries to one destination.
	CustomPath string
}

// InstalledEntry is one recorded install.
type InstalledEntry struct {
	Sink        string               `json:"sink"`
	SinkPath    string               `json:"sink_path"`
	Pack        string               `json:"pack"`
	PackFile    string               `json:"pack_file"`
	Skills      int                  `json:"skills"`
	InstalledAt string               `json:"installed_at"`
	Imports     []state.ImportRecord `json:"imports,omitempty"`
}

// InstalledResult is the output of the ListInstalled command.
type InstalledResult struct {
	StatePath string           `json:"state_path"`
	Installs  []InstalledEntry `json:"installs"`
}

// ListInstalled reports the recorded installs, optionally filtered by sink.
func ListInstalled(opts InstalledOptions) (*InstalledResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ListInstalled").Strs("sinks", opts.Sinks).Msg("Executing command")

	store := state.NewStore(opts.Paths.StatePath())
	file, err := store.Load()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(opts.Sinks))
	for _, name := range opts.Sinks {
		wanted[name] = true
	}

	result := &InstalledResult{StatePath: store.Path()}
	for _, record := range file.Installs {
		if len(wanted) > 0 && !wanted[record.Sink] {
			continue
		}
		if opts.CustomPath != "" && record.SinkPath != opts.CustomPath {
			continue
		}
		result.Installs = append(result.Installs, InstalledEntry{
			Sink:        record.Sink,
			SinkPath:    record.SinkPath,
			Pack:        record.Pack,
			PackFile:    record.PackFile,
			Skills:      len(record.InstalledPaths),
			InstalledAt: record.InstalledAt,
			Imports:     record.Imports,
		})
	}

	log.Info().Str("command", "ListInstalled").Int("installCount", len(result.Installs)).Msg("Command finished")
	return result, nil
}
