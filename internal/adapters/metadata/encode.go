package metadata

import (
	"io"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Encode writes asms to w in the metadata file format, one YAML document per assembly.
// Source file paths are written as given.
func Encode(w io.Writer, asms ...*domain.Assembly) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, asm := range asms {
		dto := assemblyDTO{Name: asm.Name, System: asm.System}
		for _, t := range asm.Types {
			dto.Types = append(dto.Types, toTypeDTO(t))
		}
		if err := enc.Encode(&dto); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to encode assembly metadata"), "assembly", asm.Name)
		}
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, "failed to encode assembly metadata")
	}
	return nil
}

func toTypeDTO(t *domain.Type) typeDTO {
	dto := typeDTO{
		Namespace:   t.Namespace,
		Name:        t.Name,
		Kind:        string(t.Kind),
		Base:        t.BaseType,
		SourceFiles: t.SourceFiles,
		Attributes:  toAttributeDTOs(t.Attributes),
	}
	for _, v := range t.Values {
		dto.Values = append(dto.Values, enumValueDTO{Name: v.Name, Value: v.Value})
	}
	for _, p := range t.Properties {
		dto.Properties = append(dto.Properties, propertyDTO{
			Name:       p.Name,
			Type:       p.Type,
			Collection: p.Collection,
			Nullable:   p.Nullable,
			ReadOnly:   p.ReadOnly,
			SourceFile: p.SourceFile,
			Attributes: toAttributeDTOs(p.Attributes),
		})
	}
	for _, m := range t.Methods {
		md := methodDTO{
			Name:       m.Name,
			Returns:    m.ReturnType,
			Collection: m.Collection,
			Composable: m.Composable,
			SourceFile: m.SourceFile,
			Attributes: toAttributeDTOs(m.Attributes),
		}
		for _, p := range m.Parameters {
			md.Parameters = append(md.Parameters, parameterDTO{Name: p.Name, Type: p.Type, Collection: p.Collection, Nullable: p.Nullable})
		}
		dto.Methods = append(dto.Methods, md)
	}
	return dto
}

func toAttributeDTOs(attrs domain.Attributes) []attributeDTO {
	out := make([]attributeDTO, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attributeDTO{Name: a.Name, Args: a.Args, Named: a.Named})
	}
	return out
}
