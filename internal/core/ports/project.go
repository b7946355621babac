package ports

// ProjectFileReader reads build project files.
//
//go:generate mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type ProjectFileReader interface {
	// SourceFiles returns the absolute paths of the compiled source files of a project.
	SourceFiles(projectPath string) []string

	// ProjectReferences returns the absolute paths of referenced projects.
	ProjectReferences(projectPath string) []string

	// PropertyValue returns the value of a project property or "".
	PropertyValue(projectPath, name string) string
}

// InputResolver expands include patterns into concrete file paths.
type InputResolver interface {
	// ResolveInputs resolves patterns relative to root. Patterns may use * and **.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
