package ports

import (
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
)

// CodeEmitter renders a code graph as source text for one language.
//
//go:generate mockgen -source=codegen.go -destination=mocks/mock_codegen.go -package=mocks
type CodeEmitter interface {
	// Language returns the language the emitter targets.
	Language() domain.Language

	// FileExtension returns the extension of generated files, including the dot.
	FileExtension() string

	// EscapeIdentifier escapes a name that collides with a language keyword.
	EscapeIdentifier(name string) string

	// Emit renders the unit.
	Emit(unit *codedom.CompileUnit, opts domain.GenerationOptions) (string, error)
}

// CodeProcessor rewrites the generated graph after every domain service has been merged.
type CodeProcessor interface {
	// ProcessGeneratedCode may mutate unit freely. typeMapping maps every entity full name in
	// the graph to its declaration.
	ProcessGeneratedCode(
		desc *domain.DomainServiceDescription,
		unit *codedom.CompileUnit,
		typeMapping map[string]*codedom.TypeDecl,
	) error
}
