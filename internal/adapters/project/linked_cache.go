package project

import (
	"path/filepath"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

type linkEntry struct {
	path   string
	server string
}

// LinkedServerProjectCache maps client projects to the server project they are linked to.
// Keys are case-insensitive project paths. Not safe for concurrent use.
type LinkedServerProjectCache struct {
	file       cacheFile
	reader     ports.ProjectFileReader
	log        ports.Logger
	links      map[domain.ProjectKey]*linkEntry
	references map[domain.ProjectKey][]string

	reportedCycle bool
}

// NewLinkedServerProjectCache creates a cache rooted at rootProject persisted to breadcrumbPath.
func NewLinkedServerProjectCache(rootProject, breadcrumbPath string, log ports.Logger, reader ports.ProjectFileReader) *LinkedServerProjectCache {
	return &LinkedServerProjectCache{
		file:       cacheFile{rootProject: rootProject, path: breadcrumbPath},
		reader:     reader,
		log:        log,
		links:      make(map[domain.ProjectKey]*linkEntry),
		references: make(map[domain.ProjectKey][]string),
	}
}

// LinkedServerProject returns the server project linked to project, or "" when it has none.
func (c *LinkedServerProjectCache) LinkedServerProject(project string) string {
	key := domain.NewProjectKey(project)
	if e, ok := c.links[key]; ok {
		return e.server
	}

	value := c.reader.PropertyValue(project, PropLinkedServerProject)
	if value == "" {
		value = c.reader.PropertyValue(project, PropLinkedServerProjectLegacy)
	}
	server := ""
	if value != "" {
		server = absPath(filepath.Dir(project), value)
	}
	c.links[key] = &linkEntry{path: project, server: server}
	return server
}

// SetLinkedServerProject records the server project linked to project. An empty server clears it.
func (c *LinkedServerProjectCache) SetLinkedServerProject(project, server string) {
	c.links[domain.NewProjectKey(project)] = &linkEntry{path: project, server: server}
}

// RootLinkedServerProject returns the server project linked to the root project.
func (c *LinkedServerProjectCache) RootLinkedServerProject() string {
	return c.LinkedServerProject(c.file.rootProject)
}

// LinkedProjects returns every project reachable from the root that is linked to a server project.
func (c *LinkedServerProjectCache) LinkedProjects() []string {
	var out []string
	for _, p := range c.knownProjects() {
		if c.LinkedServerProject(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *LinkedServerProjectCache) projectReferences(project string) []string {
	key := domain.NewProjectKey(project)
	if refs, ok := c.references[key]; ok {
		return refs
	}
	refs := c.reader.ProjectReferences(project)
	c.references[key] = refs
	return refs
}

func (c *LinkedServerProjectCache) knownProjects() []string {
	projects, err := projectClosure(c.file.rootProject, c.projectReferences)
	if err != nil && !c.reportedCycle {
		c.reportedCycle = true
		c.log.Warn(err.Error())
	}
	return projects
}

// IsFileCacheCurrent reports whether the breadcrumb file can be trusted.
func (c *LinkedServerProjectCache) IsFileCacheCurrent() bool {
	return c.file.isCurrent()
}

// LoadCacheFromFile repopulates the cache from the breadcrumb file. It returns false when the
// file is missing, stale or unreadable.
func (c *LinkedServerProjectCache) LoadCacheFromFile() bool {
	if !c.file.isCurrent() {
		return false
	}
	records, err := readBreadcrumb(c.file.path)
	if err != nil {
		c.log.Warn(err.Error())
		return false
	}
	for _, r := range records {
		c.references[domain.NewProjectKey(r.project)] = r.references
		c.SetLinkedServerProject(r.project, r.link)
	}
	return true
}

// SaveCacheToFile writes the link of every known project to the breadcrumb file.
func (c *LinkedServerProjectCache) SaveCacheToFile() error {
	projects := c.knownProjects()
	records := make([]*record, 0, len(projects))
	for _, p := range projects {
		server := c.LinkedServerProject(p)
		display := p
		if e, ok := c.links[domain.NewProjectKey(p)]; ok {
			display = e.path
		}
		records = append(records, &record{
			project:    display,
			references: c.projectReferences(p),
			link:       server,
			hasLink:    true,
		})
	}
	if err := writeBreadcrumb(c.file.path, "linked server projects", records); err != nil {
		return zerr.Wrap(err, "failed to save linked server project cache")
	}
	return nil
}

// Clear deletes the breadcrumb file.
func (c *LinkedServerProjectCache) Clear() error {
	return c.file.remove()
}
