package commands

import (
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/resolve"
)

// ShowPackOptions defines the options for the ShowPack command.
type ShowPackOptions struct {
	Env
	// PackArg is a pack name, a manifest path, or a repo-relative path.
	PackArg string
}

// ImportInfo summarizes one resolved import.
type ImportInfo struct {
	Repo   string `json:"repo"`
	Ref    string `json:"ref,omitempty"`
	Commit string `json:"commit"`
	Skills int    `json:"skills"`
}

// ResolvedSkillInfo is one skill in the final set with its install name.
type ResolvedSkillInfo struct {
	ID          string `json:"id"`
	InstallName string `json:"install_name"`
	Source      string `json:"source"`
	Repo        string `json:"repo,omitempty"`
}

// ShowPackResult is the fully resolved view of a pack.
type ShowPackResult struct {
	Name     string              `json:"name"`
	PackFile string              `json:"pack_file"`
	Prefix   string              `json:"prefix"`
	Sep      string              `json:"sep"`
	Flatten  bool                `json:"flatten"`
	Include  []string            `json:"include,omitempty"`
	Exclude  []string            `json:"exclude,omitempty"`
	Imports  []ImportInfo        `json:"imports,omitempty"`
	Skills   []ResolvedSkillInfo `json:"skills"`
}

// ShowPack resolves a pack, checks its install names for collisions, and
// returns the resolved view.
func ShowPack(opts ShowPackOptions) (*ShowPackResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ShowPack").Str("pack", opts.PackArg).Msg("Executing command")

	packPath, packRoot, err := locatePack(&opts.Env, opts.PackArg)
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

	result := &ShowPackResult{
		Name:     pack.Name,
		PackFile: resolved.PackFile,
		Prefix:   pack.InstallPrefix,
		Sep:      pack.InstallSep,
		Flatten:  pack.InstallFlatten,
		Include:  pack.Include,
		Exclude:  pack.Exclude,
	}
	for _, imp := range resolved.Imports {
		result.Imports = append(result.Imports, ImportInfo{
			Repo:   imp.Repo,
			Ref:    imp.Ref,
			Commit: imp.Commit,
			Skills: len(imp.Skills),
		})
	}
	for _, s := range resolved.FinalSkills {
		result.Skills = append(result.Skills, ResolvedSkillInfo{
			ID:          s.ID,
			InstallName: resolve.InstallName(pack.InstallPrefix, pack.InstallSep, s.ID, pack.InstallFlatten),
			Source:      string(s.Source),
			Repo:        s.Repo,
		})
	}

	log.Info().Str("command", "ShowPack").Int("skillCount", len(result.Skills)).Msg("Command finished")
	return result, nil
}
