// Package state persists the record of installed packs. The on-disk JSON
// file is the single source of truth for what skillpack believes is
// installed; writes are atomic so a reader never observes a partial file.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
)

// CurrentVersion is the state file schema version.
const CurrentVersion = 1

// ImportRecord pins an import to the commit that was installed.
type ImportRecord struct {
	Repo   string `json:"repo"`
	Ref    string `json:"ref,omitempty"`
	Commit string `json:"commit"`
}

// InstallRecord describes one installed pack in one sink. There is at most
// one record per (sink_path, pack) pair.
type InstallRecord struct {
	Sink           string         `json:"sink"`
	SinkPath       string         `json:"sink_path"`
	Pack           string         `json:"pack"`
	PackFile       string         `json:"pack_file"`
	Prefix         string         `json:"prefix"`
	Sep            string         `json:"sep"`
	Flatten        bool           `json:"flatten"`
	Imports        []ImportRecord `json:"imports"`
	InstalledPaths []string       `json:"installed_paths"`
	InstalledAt    string         `json:"installed_at"`
}

// File is the top-level persisted structure.
type File struct {
	Version  int             `json:"version"`
	Installs []InstallRecord `json:"installs"`
}

// NewFile returns an empty state file at the current version.
func NewFile() *File {
	return &File{Version: CurrentVersion, Installs: nil}
}

// Store reads and writes the state file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing file is an empty state, never an
// error.
func (s *Store) Load() (*File, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFile(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read state file: %s", s.path)
	}

	var file File
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateWrite, "state file is corrupt: %s", s.path)
	}
	return &file, nil
}

// Write persists the state atomically: temp file in the same directory,
// fsync, rename over the target, then fsync the directory. A crash leaves
// either the old or the new complete state, never a mix.
func (s *Store) Write(file *File) error {
	log := logging.GetLogger("state")

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to create state dir %s", dir)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrStateWrite, "failed to encode state")
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to create temp state file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.ErrStateWrite, "failed to write temp state file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.ErrStateWrite, "failed to sync temp state file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrStateWrite, "failed to close temp state file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to replace state file %s", s.path)
	}

	// Sync the rename itself to stable storage.
	if err := syncDir(dir); err != nil {
		return err
	}

	log.Debug().Str("path", s.path).Int("installs", len(file.Installs)).Msg("state written")
	return nil
}

func syncDir(dir string) error {
	dirFile, err := os.Open(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to open state dir %s", dir)
	}
	if err := dirFile.Sync(); err != nil {
		dirFile.Close()
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to sync state dir %s", dir)
	}
	if err := dirFile.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to close state dir %s", dir)
	}
	return nil
}

// FindRecord returns the index of the record for (sinkPath, pack), or -1.
func (f *File) FindRecord(sinkPath, pack string) int {
	for i, record := range f.Installs {
		if record.SinkPath == sinkPath && record.Pack == pack {
			return i
		}
	}
	return -1
}

// OwnsPath reports whether the record for (sinkPath, pack) lists dest among
// its installed paths. Only owned paths may be overwritten or removed.
func (f *File) OwnsPath(sinkPath, pack, dest string) bool {
	idx := f.FindRecord(sinkPath, pack)
	if idx < 0 {
		return false
	}
	for _, p := range f.Installs[idx].InstalledPaths {
		if p == dest {
			return true
		}
	}
	return false
}

// Upsert replaces the record for the same (sink_path, pack) or appends.
func (f *File) Upsert(record InstallRecord) {
	if idx := f.FindRecord(record.SinkPath, record.Pack); idx >= 0 {
		f.Installs[idx] = record
		return
	}
	f.Installs = append(f.Installs, record)
}

// Remove deletes and returns the record for (sinkPath, pack).
func (f *File) Remove(sinkPath, pack string) (InstallRecord, bool) {
	idx := f.FindRecord(sinkPath, pack)
	if idx < 0 {
		return InstallRecord{}, false
	}
	record := f.Installs[idx]
	f.Installs = append(f.Installs[:idx], f.Installs[idx+1:]...)
	return record, true
}
