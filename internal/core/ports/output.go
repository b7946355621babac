package ports

// OutputWriter writes generated files.
//
//go:generate mockgen -destination=mocks/output_mock.go -package=mocks -source=output.go
type OutputWriter interface {
	// WriteIfChanged writes content to path unless the file already holds it.
	// It reports whether the file was written.
	WriteIfChanged(path, content string) (bool, error)

	// Exists reports whether every path exists.
	Exists(paths ...string) (bool, error)
}
