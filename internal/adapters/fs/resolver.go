package fs

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver expands build item include patterns. Patterns use either path separator and may
// contain * and ? within a segment and ** across segments.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs resolves patterns relative to root into sorted, de-duplicated absolute paths.
// A literal path is returned even when the file does not exist. A pattern matching nothing
// contributes nothing.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]bool)
	for _, pattern := range patterns {
		pattern = filepath.FromSlash(strings.ReplaceAll(pattern, `\`, "/"))
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}
		pattern = filepath.Clean(pattern)

		if !strings.ContainsAny(pattern, "*?") {
			unique[pattern] = true
			continue
		}

		matches, err := r.expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			unique[m] = true
		}
	}

	result := make([]string, 0, len(unique))
	for p := range unique {
		result = append(result, p)
	}
	slices.Sort(result)
	return result, nil
}

func (r *Resolver) expand(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", pattern)
		}
		return matches, nil
	}

	base := pattern[:strings.Index(pattern, "**")]
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[:i]
	}
	re, err := globRegexp(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to compile glob"), "path", pattern)
	}

	var matches []string
	for path := range r.walker.WalkFiles(base, nil) {
		if re.MatchString(filepath.ToSlash(path)) {
			matches = append(matches, path)
		}
	}
	return matches, nil
}

// globRegexp translates a recursive glob into a case-insensitive regular expression.
func globRegexp(pattern string) (*regexp.Regexp, error) {
	p := []rune(filepath.ToSlash(pattern))
	var b strings.Builder
	b.WriteString("(?i)^")
	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case '*':
			if i+1 < len(p) && p[i+1] == '*' {
				i++
				if i+1 < len(p) && p[i+1] == '/' {
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
