// Package gitrepo resolves remote skill repositories into local checkouts.
// Clones are cached under a content-addressed directory so repeated
// resolutions of the same URL reuse one clone.
package gitrepo

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/skillpack/pkg/errors"
	"github.com/arthur-debert/skillpack/pkg/logging"
)

// Resolved is the outcome of resolving a repository: the exact commit checked
// out and the local path of the checkout.
type Resolved struct {
	Repo   string
	Ref    string
	Commit string
	Path   string
}

// Resolver turns a repository URL plus optional ref into a local checkout.
// The core depends only on this interface; tests substitute a fake.
type Resolver interface {
	Resolve(cacheDir, repo, ref string) (*Resolved, error)
}

// GitResolver resolves repositories with the git CLI.
type GitResolver struct{}

// NewResolver returns the git CLI backed Resolver.
func NewResolver() *GitResolver {
	return &GitResolver{}
}

// Resolve clones or refreshes the cached copy of repo, checks out ref (or the
// remote default branch when ref is empty) and reports the resulting commit.
func (g *GitResolver) Resolve(cacheDir, repo, ref string) (*Resolved, error) {
	log := logging.GetLogger("gitrepo")
	defer logging.LogDuration(time.Now(), "resolve "+repo)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create cache dir %s", cacheDir)
	}

	expanded := ExpandRepo(repo)
	repoDir := filepath.Join(cacheDir, CacheKey(expanded))

	if _, err := os.Stat(repoDir); err == nil {
		log.Debug().Str("repo", repo).Str("dir", repoDir).Msg("refreshing cached clone")
		if _, err := runGit("-C", repoDir, "fetch", "--all", "--tags", "--prune"); err != nil {
			return nil, importFailed(repo, err)
		}
	} else {
		log.Debug().Str("repo", repo).Str("dir", repoDir).Msg("cloning")
		if _, err := runGit("clone", expanded, repoDir); err != nil {
			return nil, importFailed(repo, err)
		}
	}

	if ref != "" {
		if _, err := runGit("-C", repoDir, "checkout", "--detach", ref); err != nil {
			return nil, importFailed(repo, err)
		}
	} else {
		// Default branch, falling back to whatever is checked out when the
		// origin/HEAD reference is absent.
		if _, err := runGit("-C", repoDir, "checkout", "--detach", "origin/HEAD"); err != nil {
			if _, err := runGit("-C", repoDir, "checkout", "--detach", "HEAD"); err != nil {
				return nil, importFailed(repo, err)
			}
		}
	}

	commit, err := runGit("-C", repoDir, "rev-parse", "HEAD")
	if err != nil {
		return nil, importFailed(repo, err)
	}

	return &Resolved{
		Repo:   repo,
		Ref:    ref,
		Commit: strings.TrimSpace(commit),
		Path:   repoDir,
	}, nil
}

// ExpandRepo widens shorthand repository references into clonable URLs.
func ExpandRepo(repo string) string {
	if strings.HasPrefix(repo, "github.com/") {
		return "https://" + repo + ".git"
	}
	return repo
}

// CacheKey derives the cache directory name for a repository URL.
func CacheKey(repo string) string {
	sum := sha256.Sum256([]byte(repo))
	return hex.EncodeToString(sum[:])
}

func importFailed(repo string, err error) error {
	return errors.Wrapf(err, errors.ErrImportResolution, "failed to resolve import %s", repo).
		WithDetail("repo", repo)
}

func runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		// A spawn failure (git not installed) leaves stderr empty; the exec
		// error is the only cause there is.
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return "", errors.Newf(errors.ErrImportResolution, "git failed: %s", detail)
		}
		return "", errors.Wrap(err, errors.ErrImportResolution, "git failed")
	}
	return string(out), nil
}
