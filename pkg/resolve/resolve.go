// Package resolve combines a pack manifest with skill discovery and remote
// imports into the final, ordered skill set, and checks that the resulting
// install names are unique.
package resolve

import (
	"sort"
	"strings"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/gitrepo"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/packs"
	"github.com/arthur-debert/skillpack/pkg/patterns"
	"github.com/arthur-debert/skillpack/pkg/skills"
)

// SourceKind tags where a resolved skill came from.
type SourceKind string

const (
	SourceLocal  SourceKind = "local"
	SourceRemote SourceKind = "remote"
)

// Skill is a discovered skill tagged with provenance.
type Skill struct {
	ID     string
	Dir    string
	Source SourceKind
	// Repo is set when Source is SourceRemote.
	Repo string
}

// Import is a resolved import: the pinned commit plus its selected skills.
type Import struct {
	Repo   string
	Ref    string
	Commit string
	Skills []Skill
}

// Pack is the fully resolved form of a manifest: provenance-tagged skill
// sets per source and the final deduplicated, exclude-filtered union.
type Pack struct {
	Pack        *packs.Pack
	PackFile    string
	Local       []Skill
	Imports     []Import
	FinalSkills []Skill
}

// ResolvePack loads the manifest at packPath and resolves it against the
// local skill tree and every declared import.
func ResolvePack(repoRoot, packPath, cacheDir string, resolver gitrepo.Resolver) (*Pack, error) {
	log := logging.GetLogger("resolve")

	pack, err := packs.Load(packPath)
	if err != nil {
		return nil, err
	}

	localSkills, err := skills.DiscoverLocal(repoRoot)
	if err != nil {
		return nil, err
	}
	selected, err := selectIncluded(localSkills, pack.Include, "local include")
	if err != nil {
		return nil, err
	}
	var local []Skill
	for _, s := range selected {
		local = append(local, Skill{ID: s.ID, Dir: s.Dir, Source: SourceLocal})
	}

	var imports []Import
	for _, spec := range pack.Imports {
		resolved, err := resolveImport(cacheDir, spec, resolver)
		if err != nil {
			return nil, err
		}
		imports = append(imports, *resolved)
	}

	union := append([]Skill(nil), local...)
	for _, imp := range imports {
		union = append(union, imp.Skills...)
	}

	final, err := applyExcludes(union, pack.Exclude)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(final, func(i, j int) bool { return final[i].ID < final[j].ID })

	log.Debug().
		Str("pack", pack.Name).
		Int("local", len(local)).
		Int("imports", len(imports)).
		Int("final", len(final)).
		Msg("pack resolved")

	return &Pack{
		Pack:        pack,
		PackFile:    packPath,
		Local:       local,
		Imports:     imports,
		FinalSkills: final,
	}, nil
}

func resolveImport(cacheDir string, spec packs.ImportSpec, resolver gitrepo.Resolver) (*Import, error) {
	resolved, err := resolver.Resolve(cacheDir, spec.Repo, spec.Ref)
	if err != nil {
		return nil, err
	}

	remote, err := skills.DiscoverRemote(resolved.Path)
	if err != nil {
		return nil, err
	}
	selected, err := selectIncluded(remote, spec.Include, "import include")
	if err != nil {
		return nil, err
	}

	tagged := make([]Skill, 0, len(selected))
	for _, s := range selected {
		tagged = append(tagged, Skill{ID: s.ID, Dir: s.Dir, Source: SourceRemote, Repo: spec.Repo})
	}
	filtered, err := applyExcludes(tagged, spec.Exclude)
	if err != nil {
		return nil, err
	}

	return &Import{
		Repo:   spec.Repo,
		Ref:    spec.Ref,
		Commit: resolved.Commit,
		Skills: filtered,
	}, nil
}

// selectIncluded returns the skills matching any include pattern, after
// verifying that every single pattern matches at least one skill. A pattern
// matching nothing is treated as a configuration mistake, not partial
// success.
func selectIncluded(list []skills.Skill, include []string, label string) ([]skills.Skill, error) {
	set, err := patterns.NewSet(include)
	if err != nil {
		return nil, err
	}

	ids := skills.IDs(list)
	counts := set.MatchCounts(ids)
	for i, pattern := range set.Patterns() {
		if counts[i] == 0 {
			return nil, errors.Newf(errors.ErrPatternMatchedNothing,
				"%s pattern matched zero skills: %s", label, pattern).
				WithDetail("pattern", pattern).
				WithHint("Check patterns or run skillpack skills to list IDs")
		}
	}

	var selected []skills.Skill
	for _, s := range list {
		if set.Matches(s.ID) {
			selected = append(selected, s)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].ID < selected[j].ID })
	return selected, nil
}

func applyExcludes(list []Skill, exclude []string) ([]Skill, error) {
	if len(exclude) == 0 {
		return list, nil
	}
	set, err := patterns.NewSet(exclude)
	if err != nil {
		return nil, err
	}
	var filtered []Skill
	for _, s := range list {
		if !set.Matches(s.ID) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// InstallName computes the destination name for a skill. Flattening joins
// every id segment with sep into one flat directory name; otherwise only the
// first segment is joined to the prefix and the rest of the hierarchy is
// preserved below it.
func InstallName(prefix, sep, id string, flatten bool) string {
	if flatten {
		return prefix + sep + strings.ReplaceAll(id, "/", sep)
	}
	head, rest := skills.SplitID(id)
	name := prefix + sep + head
	if rest != "" {
		name += "/" + rest
	}
	return name
}

// FlatName is the flattened install name, used for collision detection
// regardless of the flatten setting.
func FlatName(prefix, sep, id string) string {
	return prefix + sep + strings.ReplaceAll(id, "/", sep)
}

// DetectCollisions rejects a resolution in which two distinct skills map to
// the same install name. The check runs over the full final set, so a local
// skill and an imported one can collide.
func DetectCollisions(final []Skill, prefix, sep string) error {
	seen := make(map[string]bool, len(final))
	for _, skill := range final {
		name := FlatName(prefix, sep, skill.ID)
		if seen[name] {
			return errors.Newf(errors.ErrNameCollision, "installed folder name collision: %s", name).
				WithDetail("name", name).
				WithHint("Adjust install.prefix/install.sep or rename skills")
		}
		seen[name] = true
	}
	return nil
}
