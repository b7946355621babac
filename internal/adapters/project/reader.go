// Package project reads build project files and caches what was learned from them in
// breadcrumb files next to the build output.
package project

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Project properties naming the server project a client project is linked to.
const (
	PropLinkedServerProject       = "LinkedOpenRiaServerProject"
	PropLinkedServerProjectLegacy = "LinkedServerProject"
	propEnableDefaultCompileItems = "EnableDefaultCompileItems"
)

var defaultCompileIgnores = []string{"bin", "obj"}

var _ ports.ProjectFileReader = (*Reader)(nil)

type projectXML struct {
	XMLName        xml.Name           `xml:"Project"`
	Sdk            string             `xml:"Sdk,attr"`
	PropertyGroups []propertyGroupXML `xml:"PropertyGroup"`
	ItemGroups     []itemGroupXML     `xml:"ItemGroup"`
}

type propertyGroupXML struct {
	Properties []propertyXML `xml:",any"`
}

type propertyXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type itemGroupXML struct {
	Items []itemXML `xml:",any"`
}

type itemXML struct {
	XMLName xml.Name
	Include string `xml:"Include,attr"`
	Remove  string `xml:"Remove,attr"`
}

// document is a parsed project with its properties evaluated.
type document struct {
	path       string
	sdk        bool
	properties map[string]string
	items      []itemXML
}

// Reader implements ports.ProjectFileReader over MSBuild XML project files.
// Parsed documents are memoised per Reader; a Reader belongs to one generation pass.
type Reader struct {
	resolver ports.InputResolver
	log      ports.Logger

	mu   sync.Mutex
	docs map[domain.ProjectKey]*document
}

// NewReader creates a Reader that expands item globs with resolver and reports unreadable
// projects to log as warnings.
func NewReader(resolver ports.InputResolver, log ports.Logger) *Reader {
	return &Reader{
		resolver: resolver,
		log:      log,
		docs:     make(map[domain.ProjectKey]*document),
	}
}

// SourceFiles returns the absolute paths of the compiled source files of a project.
func (r *Reader) SourceFiles(projectPath string) []string {
	doc := r.load(projectPath)
	if doc == nil {
		return nil
	}
	dir := filepath.Dir(doc.path)

	var defaults []string
	if doc.sdk && !strings.EqualFold(doc.properties[strings.ToLower(propEnableDefaultCompileItems)], "false") {
		for _, f := range r.resolve([]string{"**/*" + sourceExtension(doc.path)}, dir) {
			if !underIgnoredDir(dir, f) {
				defaults = append(defaults, f)
			}
		}
	}

	var includes, removes []string
	for _, item := range doc.items {
		if !strings.EqualFold(item.XMLName.Local, "Compile") {
			continue
		}
		includes = append(includes, splitItems(doc.expand(item.Include))...)
		removes = append(removes, splitItems(doc.expand(item.Remove))...)
	}

	removed := make(map[domain.ProjectKey]bool)
	for _, f := range r.resolve(removes, dir) {
		removed[domain.NewProjectKey(f)] = true
	}

	files := append(defaults, r.resolve(includes, dir)...)
	out := make([]string, 0, len(files))
	seen := make(map[domain.ProjectKey]bool)
	for _, f := range files {
		key := domain.NewProjectKey(f)
		if removed[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// ProjectReferences returns the absolute paths of referenced projects.
func (r *Reader) ProjectReferences(projectPath string) []string {
	doc := r.load(projectPath)
	if doc == nil {
		return nil
	}
	dir := filepath.Dir(doc.path)

	var out []string
	for _, item := range doc.items {
		if !strings.EqualFold(item.XMLName.Local, "ProjectReference") {
			continue
		}
		for _, inc := range splitItems(doc.expand(item.Include)) {
			out = append(out, absPath(dir, inc))
		}
	}
	return out
}

// PropertyValue returns the last value assigned to a property, or "".
func (r *Reader) PropertyValue(projectPath, name string) string {
	doc := r.load(projectPath)
	if doc == nil {
		return ""
	}
	return doc.properties[strings.ToLower(name)]
}

func (r *Reader) load(projectPath string) *document {
	key := domain.NewProjectKey(projectPath)
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[key]; ok {
		return doc
	}

	doc, err := parseProject(projectPath)
	if err != nil {
		// A missing or malformed project contributes nothing.
		r.log.Warn(err.Error())
		doc = nil
	}
	r.docs[key] = doc
	return doc
}

func parseProject(projectPath string) (*document, error) {
	//nolint:gosec // Path comes from the configuration or from project references
	data, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectLoadFailed, err.Error()), "path", projectPath)
	}

	var px projectXML
	if err := xml.Unmarshal(data, &px); err != nil {
		msg := projectPath + ": " + err.Error()
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectLoadFailed, msg), "path", projectPath)
	}

	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	doc := &document{
		path: abs,
		sdk:  px.Sdk != "",
		properties: map[string]string{
			"msbuildprojectdirectory": filepath.Dir(abs),
			"msbuildprojectname":      strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		},
	}
	for _, pg := range px.PropertyGroups {
		for _, p := range pg.Properties {
			doc.properties[strings.ToLower(p.XMLName.Local)] = doc.expand(strings.TrimSpace(p.Value))
		}
	}
	for _, ig := range px.ItemGroups {
		doc.items = append(doc.items, ig.Items...)
	}
	return doc, nil
}

var propertyRef = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_.-]*)\)`)

// expand substitutes $(Name) references with properties defined so far.
func (d *document) expand(s string) string {
	if !strings.Contains(s, "$(") {
		return s
	}
	return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := propertyRef.FindStringSubmatch(ref)[1]
		return d.properties[strings.ToLower(name)]
	})
}

func (r *Reader) resolve(patterns []string, dir string) []string {
	if len(patterns) == 0 {
		return nil
	}
	files, err := r.resolver.ResolveInputs(patterns, dir)
	if err != nil {
		r.log.Warn(err.Error())
		return nil
	}
	return files
}

func splitItems(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func absPath(dir, p string) string {
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}

func sourceExtension(projectPath string) string {
	if strings.EqualFold(filepath.Ext(projectPath), ".vbproj") {
		return ".vb"
	}
	return ".cs"
}

func underIgnoredDir(projectDir, file string) bool {
	rel, err := filepath.Rel(projectDir, file)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	for _, ignored := range defaultCompileIgnores {
		if strings.EqualFold(first, ignored) {
			return true
		}
	}
	return false
}
