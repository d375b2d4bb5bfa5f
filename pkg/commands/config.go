package commands

import (
	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/arthur-debert/skillpack/pkg/logging"
)

// ConfigOptions defines the options for the ShowConfig command.
type ConfigOptions struct {
	Env
}

// ConfigResult breaks the sink table down by layer.
type ConfigResult struct {
	ConfigFile string            `json:"config_file"`
	Defaults   map[string]string `json:"defaults"`
	Overrides  map[string]string `json:"overrides,omitempty"`
	RepoSinks  map[string]string `json:"repo_sinks,omitempty"`
	Effective  map[string]string `json:"effective"`
}

// ShowConfig reports the configured sinks layer by layer: built-in defaults,
// the user config file, and the repo-level config.
func ShowConfig(opts ConfigOptions) (*ConfigResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ShowConfig").Msg("Executing command")

	detail, err := config.LoadDetail(opts.Paths, opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	return &ConfigResult{
		ConfigFile: detail.Path,
		Defaults:   detail.Defaults,
		Overrides:  detail.Overrides,
		RepoSinks:  detail.RepoSinks,
		Effective:  detail.Effective,
	}, nil
}
