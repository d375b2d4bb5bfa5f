// Package install reconciles a resolved pack against a sink directory:
// copies skill content into place, removes stale entries from a prior
// install of the same pack, and keeps the state file in sync. Destructive
// operations are guarded by ownership and path-containment checks.
package install

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/resolve"
	"github.com/arthur-debert/skillpack/pkg/state"
)

// Install copies the resolved pack's skills into sinkPath and updates the
// in-memory state (the caller persists it). The returned record lists the
// installed paths, sorted and absolute.
func Install(resolved *resolve.Pack, sinkName, sinkPath string, file *state.File) (*state.InstallRecord, error) {
	log := logging.GetLogger("install")

	if err := os.MkdirAll(sinkPath, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create sink dir %s", sinkPath)
	}
	log.Debug().Str("pack", resolved.Pack.Name).Str("path", sinkPath).Msg("install pack")

	prefix := resolved.Pack.InstallPrefix
	sep := resolved.Pack.InstallSep
	flatten := resolved.Pack.InstallFlatten
	newPaths := buildInstallPaths(resolved.FinalSkills, sinkPath, prefix, sep, flatten)

	// Remove destinations a prior install of this pack owned but the new
	// resolution no longer needs.
	if idx := file.FindRecord(sinkPath, resolved.Pack.Name); idx >= 0 {
		newSet := make(map[string]bool, len(newPaths))
		for _, p := range newPaths {
			newSet[p] = true
		}
		for _, old := range file.Installs[idx].InstalledPaths {
			if newSet[old] {
				continue
			}
			if err := ensureChildPath(sinkPath, old); err != nil {
				return nil, err
			}
			if _, err := os.Lstat(old); err == nil {
				log.Debug().Str("path", old).Msg("remove stale")
				if err := os.RemoveAll(old); err != nil {
					return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", old)
				}
				pruneEmptyParents(sinkPath, old)
			}
		}
	}

	for _, skill := range resolved.FinalSkills {
		dest := filepath.Join(sinkPath, filepath.FromSlash(resolve.InstallName(prefix, sep, skill.ID, flatten)))
		if _, err := os.Lstat(dest); err == nil {
			if !file.OwnsPath(sinkPath, resolved.Pack.Name, dest) {
				return nil, errors.Newf(errors.ErrDestNotOwned,
					"destination exists but is not owned by pack: %s", dest).
					WithDetail("path", dest).
					WithHint("Change install prefix/sep or uninstall the other pack")
			}
			if err := ensureChildPath(sinkPath, dest); err != nil {
				return nil, err
			}
			log.Debug().Str("path", dest).Msg("remove existing")
			if err := os.RemoveAll(dest); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", dest)
			}
		}
		log.Debug().Str("src", skill.Dir).Str("dest", dest).Msg("copy skill")
		if err := copySkillDir(skill.Dir, dest); err != nil {
			return nil, err
		}
	}

	imports := make([]state.ImportRecord, 0, len(resolved.Imports))
	for _, imp := range resolved.Imports {
		imports = append(imports, state.ImportRecord{Repo: imp.Repo, Ref: imp.Ref, Commit: imp.Commit})
	}

	record := state.InstallRecord{
		Sink:           sinkName,
		SinkPath:       sinkPath,
		Pack:           resolved.Pack.Name,
		PackFile:       resolved.PackFile,
		Prefix:         prefix,
		Sep:            sep,
		Flatten:        flatten,
		Imports:        imports,
		InstalledPaths: newPaths,
		InstalledAt:    time.Now().UTC().Format(time.RFC3339),
	}
	file.Upsert(record)
	return &record, nil
}

// Uninstall removes every path the record owns and drops the record from the
// in-memory state (the caller persists it).
func Uninstall(file *state.File, sinkPath, pack string) (*state.InstallRecord, error) {
	log := logging.GetLogger("install")

	record, ok := file.Remove(sinkPath, pack)
	if !ok {
		return nil, errors.Newf(errors.ErrPackNotInstalled, "pack not installed: %s", pack).
			WithHint("Run skillpack installed to list installed packs")
	}

	for _, path := range record.InstalledPaths {
		if err := ensureChildPath(sinkPath, path); err != nil {
			return nil, err
		}
		if _, err := os.Lstat(path); err == nil {
			log.Debug().Str("path", path).Msg("remove")
			if err := os.RemoveAll(path); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path)
			}
			pruneEmptyParents(sinkPath, path)
		}
	}
	return &record, nil
}

// DiffCounts reports the added/updated/removed path counts between a prior
// install and a new one. Purely observational.
func DiffCounts(oldPaths, newPaths []string) (added, updated, removed int) {
	oldSet := make(map[string]bool, len(oldPaths))
	for _, p := range oldPaths {
		oldSet[p] = true
	}
	newSet := make(map[string]bool, len(newPaths))
	for _, p := range newPaths {
		newSet[p] = true
	}
	for p := range newSet {
		if oldSet[p] {
			updated++
		} else {
			added++
		}
	}
	for p := range oldSet {
		if !newSet[p] {
			removed++
		}
	}
	return added, updated, removed
}

func buildInstallPaths(final []resolve.Skill, sinkPath, prefix, sep string, flatten bool) []string {
	out := make([]string, 0, len(final))
	for _, skill := range final {
		name := resolve.InstallName(prefix, sep, skill.ID, flatten)
		out = append(out, filepath.Join(sinkPath, filepath.FromSlash(name)))
	}
	sort.Strings(out)
	return out
}

// ensureChildPath refuses to touch anything outside the sink, preventing
// traversal via crafted ids or tampered state files.
func ensureChildPath(root, candidate string) error {
	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrOutsideSink, "refusing to operate outside sink path: %s", candidate)
	}
	return nil
}

// pruneEmptyParents removes directories left empty by a removal, walking up
// from the removed path's parent and stopping at the sink root. Hierarchical
// install names would otherwise leave husk directories behind.
func pruneEmptyParents(sinkPath, path string) {
	dir := filepath.Dir(path)
	for dir != sinkPath && strings.HasPrefix(dir, sinkPath+string(filepath.Separator)) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if os.Remove(dir) != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// copySkillDir copies src into dest, dereferencing symbolic links so the
// sink holds plain content, never live links into the host filesystem.
func copySkillDir(src, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dest)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read dir %s", src)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", srcPath)
		}
		switch {
		case info.IsDir():
			if err := copySkillDir(srcPath, destPath); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy to %s", dest)
	}
	return out.Close()
}
