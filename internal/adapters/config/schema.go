package config

// DefaultFilename is the configuration file looked up in a directory.
const DefaultFilename = "riagen.yaml"

// Riagenfile represents the structure of the riagen.yaml configuration file.
type Riagenfile struct {
	Version  string       `yaml:"version"`
	Projects []ProjectDTO `yaml:"projects"`
}

// ProjectDTO represents one client project entry in the configuration.
type ProjectDTO struct {
	ClientProject     string   `yaml:"clientProject"`
	Language          string   `yaml:"language"`
	RootNamespace     string   `yaml:"rootNamespace"`
	UseFullTypeNames  bool     `yaml:"useFullTypeNames"`
	TargetPlatform    string   `yaml:"targetPlatform"`
	ServerAssemblies  []string `yaml:"serverAssemblies"`
	ClientReferences  []string `yaml:"clientReferences"`
	SystemSearchPaths []string `yaml:"systemSearchPaths"`
	OutputDir         string   `yaml:"outputDir"`
	GeneratedCodeDir  string   `yaml:"generatedCodeDir"`
}
