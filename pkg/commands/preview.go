package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/skillpack/pkg/bundled"
	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"github.com/arthur-debert/skillpack/pkg/skills"
)

// PreviewOptions defines the options for the PreviewSkill command.
type PreviewOptions struct {
	Env
	SkillID string
}

// PreviewResult carries a skill's SKILL.md for rendering.
type PreviewResult struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Markdown string `json:"markdown"`
}

// PreviewSkill finds a skill by id, in the repo first and the bundled
// content second, and returns its SKILL.md content.
func PreviewSkill(opts PreviewOptions) (*PreviewResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "PreviewSkill").Str("skill", opts.SkillID).Msg("Executing command")

	dir, err := findSkillDir(&opts.Env, opts.SkillID)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, paths.SkillFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	return &PreviewResult{ID: opts.SkillID, Path: path, Markdown: string(content)}, nil
}

func findSkillDir(env *Env, id string) (string, error) {
	local, err := skills.DiscoverLocal(env.RepoRoot)
	if err != nil && !errors.IsErrorCode(err, errors.ErrSkillsRootMissing) {
		return "", err
	}
	for _, s := range local {
		if s.ID == id {
			return s.Dir, nil
		}
	}

	root, err := bundled.RepoRoot(env.Paths)
	if err != nil {
		return "", err
	}
	bundledSkills, err := skills.DiscoverLocal(root)
	if err != nil {
		return "", err
	}
	for _, s := range bundledSkills {
		if s.ID == id {
			return s.Dir, nil
		}
	}

	return "", errors.Newf(errors.ErrNotFound, "skill not found: %s", id).
		WithHint("run 'skillpack skills' to list available skill ids")
}
