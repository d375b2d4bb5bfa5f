// Package skills discovers skill directories in a tree. A skill is a leaf
// directory containing a SKILL.md file; the skill ID is its /-joined path
// relative to the discovery root.
package skills

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/paths"
)

// Skill is a discovered skill: its stable ID and its source directory.
type Skill struct {
	ID  string
	Dir string
}

// DiscoverLocal finds the skills under repoRoot/skills. The skills directory
// must exist, and a SKILL.md directly at the root is rejected.
func DiscoverLocal(repoRoot string) ([]Skill, error) {
	skillsRoot := filepath.Join(repoRoot, paths.SkillsDirName)
	if _, err := os.Stat(skillsRoot); err != nil {
		return nil, errors.Newf(errors.ErrSkillsRootMissing, "skills directory not found: %s", skillsRoot).
			WithHint("Auto-discovery checks current/parent dirs for skills/ or packs/. Use --root <repo> to override")
	}
	return discover(skillsRoot, true)
}

// DiscoverRemote finds the skills in a checked-out import tree. An absent or
// empty tree yields no skills, and a root-level SKILL.md is skipped.
func DiscoverRemote(root string) ([]Skill, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}
	return discover(root, false)
}

func discover(root string, isLocal bool) ([]Skill, error) {
	log := logging.GetLogger("skills")

	var skillDirs []string
	walker := &symlinkWalker{onPath: make(map[string]bool)}
	err := walker.walk(root, func(path string, entry os.DirEntry) error {
		if entry.Name() != paths.SkillFileName {
			return nil
		}
		isSymlink := entry.Type()&os.ModeSymlink != 0
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if _, err := os.ReadFile(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}

		parent := filepath.Dir(path)
		if parent == filepath.Clean(root) {
			if isLocal {
				return errors.New(errors.ErrSkillLayoutInvalid, "skills/SKILL.md is invalid").
					WithHint("Move SKILL.md into a leaf skill folder")
			}
			return nil
		}
		if isSymlink {
			parentIsSymlink, err := dirIsSymlink(parent)
			if err != nil {
				return err
			}
			if !parentIsSymlink {
				return errors.Newf(errors.ErrSkillLayoutInvalid,
					"SKILL.md is a symlink but the skill folder is not: %s", parent).
					WithHint("Symlink the skill folder under skills/ to reuse a skill")
			}
		}

		rel, err := filepath.Rel(root, parent)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", parent)
		}
		if rel == "." {
			return nil
		}
		skillDirs = append(skillDirs, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Skills are leaves: any directory that contains another skill is not
	// itself installable.
	nonLeaf := make(map[string]bool)
	for _, dir := range skillDirs {
		for ancestor := filepath.Dir(dir); ancestor != "."; ancestor = filepath.Dir(ancestor) {
			nonLeaf[ancestor] = true
		}
	}

	var found []Skill
	for _, rel := range skillDirs {
		if nonLeaf[rel] {
			continue
		}
		dir := filepath.Join(root, rel)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, errors.Newf(errors.ErrSkillLayoutInvalid, "skill dir is not a directory: %s", dir).
				WithHint("Check for broken symlinks or files under skills/")
		}
		found = append(found, Skill{ID: filepath.ToSlash(rel), Dir: dir})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	log.Debug().Str("root", root).Int("count", len(found)).Msg("discovered skills")
	return found, nil
}

// symlinkWalker walks a tree following directory symlinks. Cycle detection
// tracks the resolved paths of the current descent only, so two sibling
// aliases of the same target are both visited while a link back into an
// ancestor is skipped.
type symlinkWalker struct {
	onPath map[string]bool
}

func (w *symlinkWalker) walk(dir string, fn func(path string, entry os.DirEntry) error) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", dir)
	}
	if w.onPath[resolved] {
		return nil
	}
	w.onPath[resolved] = true
	defer delete(w.onPath, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read dir %s", dir)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := fn(path, entry); err != nil {
			return err
		}
		descend := entry.IsDir()
		if !descend && entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				descend = true
			}
		}
		if descend {
			if err := w.walk(path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func dirIsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to lstat %s", path)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// IDs extracts the sorted skill IDs from a slice of skills.
func IDs(list []Skill) []string {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	if !sort.StringsAreSorted(ids) {
		sort.Strings(ids)
	}
	return ids
}

// SplitID returns the first segment of a skill ID, used when installs keep
// the hierarchical layout instead of flattening.
func SplitID(id string) (string, string) {
	head, rest, found := strings.Cut(id, "/")
	if !found {
		return head, ""
	}
	return head, rest
}
