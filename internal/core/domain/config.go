package domain

// Config is the parsed riagen.yaml with every path made absolute.
type Config struct {
	Version  string
	Root     string
	Projects []ProjectConfig
}

// ProjectConfig describes one client project to generate code for.
type ProjectConfig struct {
	ClientProject     string
	Language          string
	RootNamespace     string
	UseFullTypeNames  bool
	TargetPlatform    TargetPlatform
	ServerAssemblies  []string
	ClientReferences  []string
	SystemSearchPaths []string
	OutputDir         string
	GeneratedCodeDir  string
}

// Options returns the dispatcher options for the project.
func (p *ProjectConfig) Options() GenerationOptions {
	return GenerationOptions{
		Language:            p.Language,
		ClientProjectPath:   p.ClientProject,
		ClientRootNamespace: p.RootNamespace,
		UseFullTypeNames:    p.UseFullTypeNames,
		TargetPlatform:      p.TargetPlatform,
	}
}
