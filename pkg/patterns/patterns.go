// Package patterns implements the glob-like pattern language used to select
// skill IDs. Patterns are `/`-separated segments: a literal segment may use
// `*` to match any run of characters within the segment, and `**` as a whole
// segment matches zero or more path segments. `*` never crosses a `/`.
package patterns

import (
	"strings"

	"github.com/arthur-debert/skillpack/pkg/errors"
)

// Set is a validated collection of patterns, matched as a union.
type Set struct {
	patterns [][]string
	raw      []string
}

// NewSet validates every pattern and compiles them into a Set.
func NewSet(patterns []string) (*Set, error) {
	compiled := make([][]string, 0, len(patterns))
	for _, pat := range patterns {
		if !Validate(pat) {
			return nil, errors.Newf(errors.ErrPatternInvalid, "invalid pattern: %s", pat).
				WithHint("Use * within segments and ** for any depth")
		}
		compiled = append(compiled, strings.Split(pat, "/"))
	}
	return &Set{patterns: compiled, raw: append([]string(nil), patterns...)}, nil
}

// Matches reports whether any pattern in the set matches the id.
func (s *Set) Matches(id string) bool {
	for _, pat := range s.patterns {
		if matchSegments(pat, strings.Split(id, "/")) {
			return true
		}
	}
	return false
}

// MatchCounts returns, per pattern in registration order, how many of the
// given ids it matches. Used for the strict zero-match check.
func (s *Set) MatchCounts(ids []string) []int {
	counts := make([]int, len(s.patterns))
	for i, pat := range s.patterns {
		for _, id := range ids {
			if matchSegments(pat, strings.Split(id, "/")) {
				counts[i]++
			}
		}
	}
	return counts
}

// Patterns returns the raw patterns in registration order.
func (s *Set) Patterns() []string {
	return s.raw
}

// Validate reports whether a pattern is well formed: non-empty, no empty
// segments, and `**` only as a whole segment.
func Validate(pattern string) bool {
	if pattern == "" {
		return false
	}
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "" {
			return false
		}
		if strings.Contains(seg, "**") && seg != "**" {
			return false
		}
	}
	return true
}

// Match reports whether a single pattern matches an id.
// Invalid patterns never match.
func Match(pattern, id string) bool {
	if !Validate(pattern) {
		return false
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(id, "/"))
}

type memoKey struct {
	pi int
	ti int
}

// matchSegments matches pattern segments against id segments with
// backtracking over `**`. The memo table is scoped to a single call, keyed
// on (pattern index, id index), which keeps patterns with several `**`
// segments linear instead of exponential.
func matchSegments(pat, id []string) bool {
	memo := make(map[memoKey]bool)
	return matchFrom(pat, id, 0, 0, memo)
}

func matchFrom(pat, id []string, pi, ti int, memo map[memoKey]bool) bool {
	if pi == len(pat) {
		return ti == len(id)
	}
	key := memoKey{pi, ti}
	if cached, ok := memo[key]; ok {
		return cached
	}

	var matched bool
	if pat[pi] == "**" {
		// Try matching zero segments before consuming one more.
		matched = matchFrom(pat, id, pi+1, ti, memo) ||
			(ti < len(id) && matchFrom(pat, id, pi, ti+1, memo))
	} else {
		matched = ti < len(id) &&
			matchSegment(pat[pi], id[ti]) &&
			matchFrom(pat, id, pi+1, ti+1, memo)
	}

	memo[key] = matched
	return matched
}

// matchSegment matches one literal pattern segment (possibly containing `*`
// wildcards) against one id segment.
func matchSegment(pat, seg string) bool {
	chunks := strings.Split(pat, "*")
	if len(chunks) == 1 {
		return pat == seg
	}

	// Anchor at the start unless the segment begins with `*`.
	if chunks[0] != "" {
		if !strings.HasPrefix(seg, chunks[0]) {
			return false
		}
		seg = seg[len(chunks[0]):]
	}

	// Anchor at the end unless the segment ends with `*`.
	last := chunks[len(chunks)-1]
	if last != "" {
		if !strings.HasSuffix(seg, last) {
			return false
		}
		seg = seg[:len(seg)-len(last)]
	}

	// Interior chunks must appear in order in what remains.
	for _, chunk := range chunks[1 : len(chunks)-1] {
		if chunk == "" {
			continue
		}
		idx := strings.Index(seg, chunk)
		if idx < 0 {
			return false
		}
		seg = seg[idx+len(chunk):]
	}
	return true
}
