// Package shared decides which server types and members already exist on the client, either
// because the client references an assembly containing them or because it compiles the same
// source files.
package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
)

// metadataSuffix is the extension of assembly metadata files found in system search paths.
const metadataSuffix = ".meta.yaml"

// Assemblies resolves server types against a set of candidate client assemblies.
// Assemblies are read lazily and cached by path for the lifetime of the instance. Lookups are
// memoised. An Assemblies belongs to one generation pass and is not safe for concurrent use.
type Assemblies struct {
	paths       []string
	searchPaths []string
	reader      ports.MetadataReader
	log         ports.Logger

	loaded      map[string]*domain.Assembly
	system      []*domain.Assembly
	systemReady bool

	types      map[string]*domain.Type
	methods    map[string]*domain.Method
	properties map[string]*domain.Property
}

// NewAssemblies creates a resolver over assemblyPaths. Metadata files found directly in
// systemSearchPaths serve as a fallback for framework types.
func NewAssemblies(assemblyPaths, systemSearchPaths []string, reader ports.MetadataReader, log ports.Logger) *Assemblies {
	return &Assemblies{
		paths:       assemblyPaths,
		searchPaths: systemSearchPaths,
		reader:      reader,
		log:         log,
		loaded:      make(map[string]*domain.Assembly),
		types:       make(map[string]*domain.Type),
		methods:     make(map[string]*domain.Method),
		properties:  make(map[string]*domain.Property),
	}
}

// SharedType returns the client type matching an assembly-qualified server type name, or nil.
// Framework types match by full name against any system assembly; other types must be present
// in a candidate assembly. Domain services are never shared.
func (a *Assemblies) SharedType(typeAQN string) *domain.Type {
	key := strings.ToLower(strings.TrimSpace(typeAQN))
	if t, ok := a.types[key]; ok {
		return t
	}
	t := a.findType(typeAQN)
	a.types[key] = t
	return t
}

func (a *Assemblies) findType(typeAQN string) *domain.Type {
	fullName, asmName := domain.ParseQualifiedName(typeAQN)
	if fullName == "" {
		return nil
	}

	if asmName == "" || domain.IsSystemAssemblyName(asmName) {
		for _, asm := range a.systemAssemblies() {
			if t := asm.FindType(fullName); t != nil {
				return t
			}
		}
		if asmName != "" {
			return nil
		}
	}

	for _, asm := range a.candidates() {
		if asm.System {
			continue
		}
		t := asm.FindType(fullName)
		if t == nil {
			continue
		}
		if a.isDomainService(t) {
			return nil
		}
		return t
	}
	return nil
}

// SharedMethod returns the method of the shared type with the given name whose parameter types
// match parameterTypeAQNs by full name, case-insensitively.
func (a *Assemblies) SharedMethod(typeAQN, methodName string, parameterTypeAQNs []string) *domain.Method {
	key := memberKey(typeAQN, methodName, parameterTypeAQNs...)
	if m, ok := a.methods[key]; ok {
		return m
	}

	var found *domain.Method
	if t := a.SharedType(typeAQN); t != nil {
		for _, m := range t.Methods {
			if m.Name == methodName && parametersMatch(m.ParameterTypes(), parameterTypeAQNs) {
				found = m
				break
			}
		}
	}
	a.methods[key] = found
	return found
}

// SharedProperty returns the property of the shared type with the given name, or nil.
func (a *Assemblies) SharedProperty(typeAQN, propertyName string) *domain.Property {
	key := memberKey(typeAQN, propertyName)
	if p, ok := a.properties[key]; ok {
		return p
	}

	var found *domain.Property
	if t := a.SharedType(typeAQN); t != nil {
		found = t.Property(propertyName)
	}
	a.properties[key] = found
	return found
}

func parametersMatch(declared, wanted []string) bool {
	if len(declared) != len(wanted) {
		return false
	}
	for i := range declared {
		d, _ := domain.ParseQualifiedName(declared[i])
		w, _ := domain.ParseQualifiedName(wanted[i])
		if !strings.EqualFold(d, w) {
			return false
		}
	}
	return true
}

// isDomainService walks the base chain of t through the candidate assemblies.
func (a *Assemblies) isDomainService(t *domain.Type) bool {
	seen := make(map[string]bool)
	for cur := t; cur != nil && cur.BaseType != ""; {
		base, _ := domain.ParseQualifiedName(cur.BaseType)
		if strings.EqualFold(base, domain.DomainServiceBaseType) {
			return true
		}
		if seen[strings.ToLower(base)] {
			return false
		}
		seen[strings.ToLower(base)] = true
		cur = a.lookupAnywhere(base)
	}
	return false
}

func (a *Assemblies) lookupAnywhere(fullName string) *domain.Type {
	for _, asm := range a.candidates() {
		if t := asm.FindType(fullName); t != nil {
			return t
		}
	}
	return nil
}

// candidates returns every candidate assembly that could be read.
func (a *Assemblies) candidates() []*domain.Assembly {
	out := make([]*domain.Assembly, 0, len(a.paths))
	for _, p := range a.paths {
		if asm := a.load(p); asm != nil {
			out = append(out, asm)
		}
	}
	return out
}

// systemAssemblies returns the system candidates followed by the search path assemblies.
func (a *Assemblies) systemAssemblies() []*domain.Assembly {
	if !a.systemReady {
		a.systemReady = true
		for _, asm := range a.candidates() {
			if asm.System {
				a.system = append(a.system, asm)
			}
		}
		for _, dir := range a.searchPaths {
			entries, err := os.ReadDir(dir)
			if err != nil {
				a.log.Info(fmt.Sprintf("Could not search %q for system assemblies: %v", dir, err))
				continue
			}
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), metadataSuffix) {
					continue
				}
				if asm := a.load(filepath.Join(dir, e.Name())); asm != nil {
					a.system = append(a.system, asm)
				}
			}
		}
	}
	return a.system
}

// load reads an assembly once. A failure is reported as an informational message and
// the assembly contributes nothing.
func (a *Assemblies) load(path string) *domain.Assembly {
	key := strings.ToLower(filepath.Clean(path))
	if asm, ok := a.loaded[key]; ok {
		return asm
	}
	asm, err := a.reader.ReadAssembly(path)
	if err != nil {
		a.log.Info(fmt.Sprintf("Could not load assembly %q while searching for shared types: %v", path, err))
		asm = nil
	}
	a.loaded[key] = asm
	return asm
}
