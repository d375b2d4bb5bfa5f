package commands

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/skillpack/pkg/bundled"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/packs"
	"github.com/arthur-debert/skillpack/pkg/paths"
)

// ListPacksOptions defines the options for the ListPacks command.
type ListPacksOptions struct {
	Env
}

// PackInfo is one listed pack manifest.
type PackInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Bundled bool   `json:"bundled,omitempty"`
}

// ListPacksResult is the output of the ListPacks command.
type ListPacksResult struct {
	Packs []PackInfo `json:"packs"`
}

// ListPacks lists the pack manifests from the repo and the bundled content.
// A repo pack shadows a bundled pack with the same name.
func ListPacks(opts ListPacksOptions) (*ListPacksResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ListPacks").Str("repoRoot", opts.RepoRoot).Msg("Executing command")

	result := &ListPacksResult{}
	seen := make(map[string]bool)

	if opts.RepoRoot != "" {
		repoPacks, err := packs.ListDir(filepath.Join(opts.RepoRoot, paths.PacksDirName), opts.RepoRoot)
		if err != nil {
			return nil, err
		}
		for _, p := range repoPacks {
			result.Packs = append(result.Packs, PackInfo{Name: p.Name, Path: p.Path})
			seen[p.Name] = true
		}
	}

	root, err := bundled.RepoRoot(opts.Paths)
	if err != nil {
		return nil, err
	}
	bundledPacks, err := packs.ListDir(filepath.Join(root, paths.PacksDirName), root)
	if err != nil {
		return nil, err
	}
	for _, p := range bundledPacks {
		if seen[p.Name] {
			continue
		}
		result.Packs = append(result.Packs, PackInfo{Name: p.Name, Path: p.Path, Bundled: true})
	}

	sort.Slice(result.Packs, func(i, j int) bool {
		return result.Packs[i].Name < result.Packs[j].Name
	})

	log.Info().Str("command", "ListPacks").Int("packCount", len(result.Packs)).Msg("Command finished")
	return result, nil
}
