package commands

import (
	"sort"

	"github.com/arthur-debert/skillpack/pkg/bundled"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/skills"
)

// ListSkillsOptions defines the options for the ListSkills command.
type ListSkillsOptions struct {
	Env
	// IncludeBundled merges the bundled skills into the listing. Repo skills
	// shadow bundled ones with the same id.
	IncludeBundled bool
}

// SkillInfo is one listed skill.
type SkillInfo struct {
	ID      string `json:"id"`
	Dir     string `json:"dir"`
	Bundled bool   `json:"bundled,omitempty"`
}

// ListSkillsResult is the output of the ListSkills command.
type ListSkillsResult struct {
	RepoRoot string      `json:"repo_root,omitempty"`
	Skills   []SkillInfo `json:"skills"`
}

// ListSkills lists every skill in the repo, optionally merged with the
// bundled skills.
func ListSkills(opts ListSkillsOptions) (*ListSkillsResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "ListSkills").Str("repoRoot", opts.RepoRoot).Msg("Executing command")

	local, err := skills.DiscoverLocal(opts.RepoRoot)
	if err != nil {
		// Outside a repo the bundled listing still works.
		if !opts.IncludeBundled || !errors.IsErrorCode(err, errors.ErrSkillsRootMissing) {
			return nil, err
		}
		local = nil
	}

	result := &ListSkillsResult{RepoRoot: opts.RepoRoot}
	seen := make(map[string]bool, len(local))
	for _, s := range local {
		result.Skills = append(result.Skills, SkillInfo{ID: s.ID, Dir: s.Dir})
		seen[s.ID] = true
	}

	if opts.IncludeBundled {
		root, err := bundled.RepoRoot(opts.Paths)
		if err != nil {
			return nil, err
		}
		bundledSkills, err := skills.DiscoverLocal(root)
		if err != nil {
			return nil, err
		}
		for _, s := range bundledSkills {
			if seen[s.ID] {
				continue
			}
			result.Skills = append(result.Skills, SkillInfo{ID: s.ID, Dir: s.Dir, Bundled: true})
		}
	}

	sort.Slice(result.Skills, func(i, j int) bool {
		return result.Skills[i].ID < result.Skills[j].ID
	})

	log.Info().Str("command", "ListSkills").Int("skillCount", len(result.Skills)).Msg("Command finished")
	return result, nil
}
