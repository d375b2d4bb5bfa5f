// Package testutil provides filesystem helpers shared by skillpack tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// Parent directories are created as needed. It fails the test on error.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// CreateSymlink creates a symbolic link pointing to target.
// It fails the test if the symlink cannot be created.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// CreateSkill creates a skill directory with a SKILL.md under root/skills.
// The id may be nested ("coding/go"). Returns the skill directory path.
func CreateSkill(t *testing.T, root, id, content string) string {
	t.Helper()

	dir := filepath.Join(root, "skills", filepath.FromSlash(id))
	CreateFile(t, dir, "SKILL.md", content)
	return dir
}

// CreatePackFile writes a pack manifest under root/packs.
func CreatePackFile(t *testing.T, root, name, yaml string) string {
	t.Helper()

	return CreateFile(t, root, filepath.Join("packs", name+".yaml"), yaml)
}
