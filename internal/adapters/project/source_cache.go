package project

import (
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

type listEntry struct {
	path  string
	items []string
}

// SourceFileCache caches the source files and project references of a project and everything
// it references. Keys are case-insensitive project paths. A cache owns its breadcrumb file for
// the lifetime of a generation pass and is not safe for concurrent use.
type SourceFileCache struct {
	file       cacheFile
	reader     ports.ProjectFileReader
	log        ports.Logger
	sources    map[domain.ProjectKey]*listEntry
	references map[domain.ProjectKey]*listEntry

	reportedCycle bool
}

// NewSourceFileCache creates a cache rooted at rootProject persisted to breadcrumbPath.
func NewSourceFileCache(rootProject, breadcrumbPath string, log ports.Logger, reader ports.ProjectFileReader) *SourceFileCache {
	return &SourceFileCache{
		file:       cacheFile{rootProject: rootProject, path: breadcrumbPath},
		reader:     reader,
		log:        log,
		sources:    make(map[domain.ProjectKey]*listEntry),
		references: make(map[domain.ProjectKey]*listEntry),
	}
}

// RootProject returns the project the cache was created for.
func (c *SourceFileCache) RootProject() string {
	return c.file.rootProject
}

// SourceFiles returns the source files of project, reading the project file on first access.
func (c *SourceFileCache) SourceFiles(project string) []string {
	key := domain.NewProjectKey(project)
	if e, ok := c.sources[key]; ok {
		return e.items
	}
	files := c.reader.SourceFiles(project)
	c.sources[key] = &listEntry{path: project, items: files}
	return files
}

// SetSourceFiles replaces the source files of project.
func (c *SourceFileCache) SetSourceFiles(project string, files []string) {
	c.sources[domain.NewProjectKey(project)] = &listEntry{path: project, items: files}
}

// ProjectReferences returns the referenced projects of project, reading the project file on
// first access.
func (c *SourceFileCache) ProjectReferences(project string) []string {
	key := domain.NewProjectKey(project)
	if e, ok := c.references[key]; ok {
		return e.items
	}
	refs := c.reader.ProjectReferences(project)
	c.references[key] = &listEntry{path: project, items: refs}
	return refs
}

// SetProjectReferences replaces the referenced projects of project.
func (c *SourceFileCache) SetProjectReferences(project string, refs []string) {
	c.references[domain.NewProjectKey(project)] = &listEntry{path: project, items: refs}
}

// AllKnownProjects returns the root project and every project it transitively references.
func (c *SourceFileCache) AllKnownProjects() []string {
	projects, err := projectClosure(c.file.rootProject, c.ProjectReferences)
	if err != nil && !c.reportedCycle {
		c.reportedCycle = true
		c.log.Warn(err.Error())
	}
	return projects
}

// IsFileCacheCurrent reports whether the breadcrumb file can be trusted.
func (c *SourceFileCache) IsFileCacheCurrent() bool {
	return c.file.isCurrent()
}

// LoadCacheFromFile repopulates the cache from the breadcrumb file. It returns false when the
// file is missing, stale or unreadable, in which case live project files are used instead.
func (c *SourceFileCache) LoadCacheFromFile() bool {
	if !c.file.isCurrent() {
		return false
	}
	records, err := readBreadcrumb(c.file.path)
	if err != nil {
		c.log.Warn(err.Error())
		return false
	}
	for _, r := range records {
		c.SetSourceFiles(r.project, r.sources)
		c.SetProjectReferences(r.project, r.references)
	}
	return true
}

// SaveCacheToFile writes every known project to the breadcrumb file.
func (c *SourceFileCache) SaveCacheToFile() error {
	projects := c.AllKnownProjects()
	records := make([]*record, 0, len(projects))
	for _, p := range projects {
		records = append(records, &record{
			project:    c.displayPath(p),
			sources:    c.SourceFiles(p),
			references: c.ProjectReferences(p),
		})
	}
	if err := writeBreadcrumb(c.file.path, "source files by project", records); err != nil {
		return zerr.Wrap(err, "failed to save source file cache")
	}
	return nil
}

// Clear deletes the breadcrumb file.
func (c *SourceFileCache) Clear() error {
	return c.file.remove()
}

func (c *SourceFileCache) displayPath(project string) string {
	if e, ok := c.sources[domain.NewProjectKey(project)]; ok {
		return e.path
	}
	return project
}
