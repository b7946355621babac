package project

import (
	"bufio"
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/zerr"
)

// record is one project block of a breadcrumb file.
type record struct {
	project    string
	sources    []string
	references []string
	link       string
	hasLink    bool
}

const (
	keySource    = "source"
	keyReference = "reference"
	keyLink      = "link"
)

// readBreadcrumb parses a breadcrumb file. Blank lines and lines starting with # are ignored.
func readBreadcrumb(path string) ([]*record, error) {
	//nolint:gosec // Path is derived from the configured output directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBreadcrumbParseFailed, err.Error()), "path", path)
	}

	var (
		records []*record
		current *record
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = &record{project: strings.TrimSpace(line[1 : len(line)-1])}
			records = append(records, current)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || current == nil {
			return nil, breadcrumbSyntaxError(path, lineNo, "expected [project] header or key=value")
		}
		switch strings.TrimSpace(key) {
		case keySource:
			current.sources = append(current.sources, value)
		case keyReference:
			current.references = append(current.references, value)
		case keyLink:
			current.link = value
			current.hasLink = true
		default:
			return nil, breadcrumbSyntaxError(path, lineNo, "unknown key "+key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBreadcrumbParseFailed, err.Error()), "path", path)
	}
	return records, nil
}

func breadcrumbSyntaxError(path string, line int, msg string) error {
	err := zerr.With(zerr.Wrap(domain.ErrBreadcrumbParseFailed, msg), "file", path)
	return zerr.With(err, "line", line)
}

// writeBreadcrumb replaces the breadcrumb file atomically.
func writeBreadcrumb(path, header string, records []*record) error {
	var b strings.Builder
	b.WriteString("# " + header + "\n")
	for _, r := range records {
		b.WriteString("\n[" + r.project + "]\n")
		for _, s := range r.sources {
			b.WriteString(keySource + "=" + s + "\n")
		}
		for _, ref := range r.references {
			b.WriteString(keyReference + "=" + ref + "\n")
		}
		if r.hasLink {
			b.WriteString(keyLink + "=" + r.link + "\n")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Cleanup of the temp file after rename fails harmlessly

	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// cacheFile is the breadcrumb file shared by both cache kinds.
type cacheFile struct {
	rootProject string
	path        string
}

// isCurrent reports whether the breadcrumb exists and is not older than the root project or any
// project recorded in it. Projects that no longer exist do not invalidate it.
func (c *cacheFile) isCurrent() bool {
	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}
	written := info.ModTime()

	projects := []string{c.rootProject}
	if records, err := readBreadcrumb(c.path); err == nil {
		for _, r := range records {
			projects = append(projects, r.project)
		}
	}
	for _, p := range projects {
		if newerThan(p, written) {
			return false
		}
	}
	return true
}

func newerThan(path string, t time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.ModTime().After(t)
}

// remove deletes the breadcrumb file if present.
func (c *cacheFile) remove() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrBreadcrumbWriteFailed, err.Error()), "path", c.path)
	}
	return nil
}

// projectClosure returns root and every project reachable through refs, in discovery order.
// A reference cycle does not stop the walk; it is returned as an error alongside the projects.
func projectClosure(root string, refs func(string) []string) ([]string, error) {
	g := domain.NewProjectGraph()
	pending := []string{root}
	visited := make(map[domain.ProjectKey]bool)
	for len(pending) > 0 {
		p := pending[0]
		pending = pending[1:]
		key := domain.NewProjectKey(p)
		if visited[key] {
			continue
		}
		visited[key] = true
		r := refs(p)
		g.AddProject(p, r)
		pending = append(pending, r...)
	}

	var out []string
	for p := range g.Reachable(root) {
		out = append(out, p)
	}
	return out, g.Validate(root)
}
