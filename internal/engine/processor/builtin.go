package processor

import (
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
)

// GeneratedCodeProcessorType is the server type name a domain service declares to stamp its
// generated entities with a generated-code attribute.
const GeneratedCodeProcessorType = "Riagen.Processors.GeneratedCodeProcessor"

const attrGeneratedCode = "System.CodeDom.Compiler.GeneratedCodeAttribute"

// RegisterBuiltins adds the processors shipped with the generator.
func RegisterBuiltins(r *Registry, tool, version string) {
	r.Register(GeneratedCodeProcessorType, func(emitter ports.CodeEmitter) (ports.CodeProcessor, error) {
		return newGeneratedCodeProcessor(emitter, tool, version), nil
	})
}

type generatedCodeProcessor struct {
	tool    string
	version string
}

func newGeneratedCodeProcessor(_ ports.CodeEmitter, tool, version string) *generatedCodeProcessor {
	return &generatedCodeProcessor{tool: tool, version: version}
}

// ProcessGeneratedCode stamps every entity the service exposes that is still in the graph.
func (p *generatedCodeProcessor) ProcessGeneratedCode(
	desc *domain.DomainServiceDescription,
	_ *codedom.CompileUnit,
	typeMapping map[string]*codedom.TypeDecl,
) error {
	for _, e := range desc.Entities {
		decl, ok := typeMapping[e.Type.FullName()]
		if !ok || hasAttribute(decl, attrGeneratedCode) {
			continue
		}
		decl.Attributes = append(decl.Attributes, codedom.Attribute{
			Type: codedom.Ref(attrGeneratedCode),
			Args: []codedom.Literal{codedom.Str(p.tool), codedom.Str(p.version)},
		})
	}
	return nil
}

func hasAttribute(decl *codedom.TypeDecl, name string) bool {
	for _, a := range decl.Attributes {
		if a.Type.Name == name {
			return true
		}
	}
	return false
}
