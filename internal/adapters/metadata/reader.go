// Package metadata reads assembly metadata files into the domain type model.
// Files are parsed as data only; nothing they describe is ever executed.
package metadata

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileSuffix is the extension of assembly metadata files.
const FileSuffix = ".meta.yaml"

var _ ports.MetadataReader = (*Reader)(nil)

// Reader implements ports.MetadataReader over YAML metadata files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadAssembly parses the metadata file at path.
func (r *Reader) ReadAssembly(path string) (*domain.Assembly, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, err.Error()), "path", path)
	}

	//nolint:gosec // Path is provided by the configuration
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, err.Error()), "path", abs)
	}

	var dto assemblyDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, err.Error()), "path", abs)
	}
	if dto.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, "missing assembly name"), "path", abs)
	}

	asm := &domain.Assembly{
		Name:   dto.Name,
		Path:   abs,
		System: dto.System || domain.IsSystemAssemblyName(dto.Name),
		Types:  make([]*domain.Type, 0, len(dto.Types)),
	}
	dir := filepath.Dir(abs)
	for i := range dto.Types {
		t, err := mapType(&dto.Types[i], dto.Name, dir)
		if err != nil {
			return nil, zerr.With(err, "path", abs)
		}
		asm.Types = append(asm.Types, t)
	}
	return asm, nil
}

// ReadAssemblies reads every path in order and fails on the first error.
func (r *Reader) ReadAssemblies(paths []string) ([]*domain.Assembly, error) {
	out := make([]*domain.Assembly, 0, len(paths))
	for _, p := range paths {
		asm, err := r.ReadAssembly(p)
		if err != nil {
			return nil, err
		}
		out = append(out, asm)
	}
	return out, nil
}

func mapType(dto *typeDTO, assembly, dir string) (*domain.Type, error) {
	if dto.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, "type without name"), "namespace", dto.Namespace)
	}
	kind, err := mapKind(dto.Kind)
	if err != nil {
		return nil, zerr.With(err, "type", dto.Namespace+"."+dto.Name)
	}

	t := &domain.Type{
		Assembly:   assembly,
		Namespace:  dto.Namespace,
		Name:       dto.Name,
		Kind:       kind,
		BaseType:   dto.Base,
		Attributes: mapAttributes(dto.Attributes),
	}
	for _, f := range dto.SourceFiles {
		t.SourceFiles = append(t.SourceFiles, resolveSource(dir, f))
	}
	for _, v := range dto.Values {
		t.Values = append(t.Values, domain.EnumValue{Name: v.Name, Value: v.Value})
	}
	for _, p := range dto.Properties {
		t.Properties = append(t.Properties, &domain.Property{
			Name:       p.Name,
			Type:       p.Type,
			Collection: p.Collection,
			Nullable:   p.Nullable,
			ReadOnly:   p.ReadOnly,
			SourceFile: resolveSource(dir, p.SourceFile),
			Attributes: mapAttributes(p.Attributes),
		})
	}
	for _, m := range dto.Methods {
		method := &domain.Method{
			Name:       m.Name,
			ReturnType: m.Returns,
			Collection: m.Collection,
			Composable: m.Composable,
			SourceFile: resolveSource(dir, m.SourceFile),
			Attributes: mapAttributes(m.Attributes),
		}
		for _, p := range m.Parameters {
			method.Parameters = append(method.Parameters, domain.Parameter{
				Name:       p.Name,
				Type:       p.Type,
				Collection: p.Collection,
				Nullable:   p.Nullable,
			})
		}
		t.Methods = append(t.Methods, method)
	}
	return t, nil
}

func mapKind(kind string) (domain.TypeKind, error) {
	switch strings.ToLower(kind) {
	case "", "class":
		return domain.KindClass, nil
	case "struct":
		return domain.KindStruct, nil
	case "enum":
		return domain.KindEnum, nil
	case "interface":
		return domain.KindInterface, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrAssemblyLoadFailed, "unknown type kind"), "kind", kind)
}

func mapAttributes(dtos []attributeDTO) domain.Attributes {
	if len(dtos) == 0 {
		return nil
	}
	out := make(domain.Attributes, 0, len(dtos))
	for _, a := range dtos {
		out = append(out, domain.Attribute{Name: a.Name, Args: a.Args, Named: a.Named})
	}
	return out
}

func resolveSource(dir, file string) string {
	if file == "" {
		return ""
	}
	file = filepath.FromSlash(strings.ReplaceAll(file, `\`, "/"))
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	return filepath.Clean(file)
}
