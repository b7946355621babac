package metadata

// assemblyDTO is the on-disk shape of an assembly metadata file.
type assemblyDTO struct {
	Name   string    `yaml:"name"`
	System bool      `yaml:"system"`
	Types  []typeDTO `yaml:"types"`
}

type typeDTO struct {
	Namespace   string         `yaml:"namespace"`
	Name        string         `yaml:"name"`
	Kind        string         `yaml:"kind"`
	Base        string         `yaml:"base"`
	SourceFiles []string       `yaml:"sourceFiles"`
	Attributes  []attributeDTO `yaml:"attributes"`
	Values      []enumValueDTO `yaml:"values"`
	Properties  []propertyDTO  `yaml:"properties"`
	Methods     []methodDTO    `yaml:"methods"`
}

type attributeDTO struct {
	Name  string            `yaml:"name"`
	Args  []string          `yaml:"args"`
	Named map[string]string `yaml:"named"`
}

type enumValueDTO struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

type propertyDTO struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Collection bool           `yaml:"collection"`
	Nullable   bool           `yaml:"nullable"`
	ReadOnly   bool           `yaml:"readOnly"`
	SourceFile string         `yaml:"sourceFile"`
	Attributes []attributeDTO `yaml:"attributes"`
}

type parameterDTO struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Collection bool   `yaml:"collection"`
	Nullable   bool   `yaml:"nullable"`
}

type methodDTO struct {
	Name       string         `yaml:"name"`
	Returns    string         `yaml:"returns"`
	Collection bool           `yaml:"collection"`
	Composable bool           `yaml:"composable"`
	SourceFile string         `yaml:"sourceFile"`
	Attributes []attributeDTO `yaml:"attributes"`
	Parameters []parameterDTO `yaml:"parameters"`
}
