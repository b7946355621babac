// Package domain contains the core models shared by every stage of client code generation:
// assembly metadata, domain service descriptions, share classification and diagnostics.
package domain

import "strings"

// TypeKind distinguishes the shape of a metadata type.
type TypeKind string

const (
	// KindClass is a reference type.
	KindClass TypeKind = "class"
	// KindStruct is a value type.
	KindStruct TypeKind = "struct"
	// KindEnum is an enumeration.
	KindEnum TypeKind = "enum"
	// KindInterface is an interface.
	KindInterface TypeKind = "interface"
)

// Assembly is the parsed metadata of one compiled assembly.
type Assembly struct {
	Name   string
	Path   string
	System bool
	Types  []*Type
}

// FindType returns the type with the given full name, compared case-insensitively.
func (a *Assembly) FindType(fullName string) *Type {
	for _, t := range a.Types {
		if strings.EqualFold(t.FullName(), fullName) {
			return t
		}
	}
	return nil
}

// Attribute is a custom attribute applied to a type or member.
type Attribute struct {
	Name  string
	Args  []string
	Named map[string]string
}

// Arg returns the positional argument at i or "" when absent.
func (a Attribute) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// NamedArg returns the named argument or "" when absent.
func (a Attribute) NamedArg(name string) string {
	for k, v := range a.Named {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Attributes is the attribute list of a type or member.
type Attributes []Attribute

// Find returns the first attribute with the given name.
// The "Attribute" suffix is optional on both sides.
func (as Attributes) Find(name string) (Attribute, bool) {
	want := trimAttributeSuffix(name)
	for _, a := range as {
		if strings.EqualFold(trimAttributeSuffix(a.Name), want) {
			return a, true
		}
	}
	return Attribute{}, false
}

// Has reports whether an attribute with the given name is present.
func (as Attributes) Has(name string) bool {
	_, ok := as.Find(name)
	return ok
}

// All returns every attribute with the given name.
func (as Attributes) All(name string) []Attribute {
	want := trimAttributeSuffix(name)
	var out []Attribute
	for _, a := range as {
		if strings.EqualFold(trimAttributeSuffix(a.Name), want) {
			out = append(out, a)
		}
	}
	return out
}

func trimAttributeSuffix(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "Attribute")
}

// EnumValue is a named constant of an enum type.
type EnumValue struct {
	Name  string
	Value int64
}

// Type describes a type declared in an assembly.
type Type struct {
	Assembly    string
	Namespace   string
	Name        string
	Kind        TypeKind
	BaseType    string
	SourceFiles []string
	Attributes  Attributes
	Properties  []*Property
	Methods     []*Method
	Values      []EnumValue
}

// FullName returns the namespace-qualified name.
func (t *Type) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// AssemblyQualifiedName returns "Namespace.Name, Assembly".
func (t *Type) AssemblyQualifiedName() string {
	return QualifyName(t.FullName(), t.Assembly)
}

// Property returns the declared property with the given name.
func (t *Type) Property(name string) *Property {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Property describes a property declared on a type.
type Property struct {
	Name       string
	Type       string
	Collection bool
	Nullable   bool
	ReadOnly   bool
	SourceFile string
	Attributes Attributes
}

// Parameter is a method parameter.
type Parameter struct {
	Name       string
	Type       string
	Collection bool
	Nullable   bool
}

// Method describes a method declared on a type.
type Method struct {
	Name       string
	ReturnType string
	Collection bool
	Composable bool
	SourceFile string
	Parameters []Parameter
	Attributes Attributes
}

// ParameterTypes returns the full type names of the method parameters.
func (m *Method) ParameterTypes() []string {
	out := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		out[i] = p.Type
	}
	return out
}

// ReturnsVoid reports whether the method has no return value.
func (m *Method) ReturnsVoid() bool {
	return m.ReturnType == "" || m.ReturnType == TypeVoid
}

// QualifyName joins a full type name and an assembly name into an assembly-qualified name.
func QualifyName(fullName, assembly string) string {
	if assembly == "" {
		return fullName
	}
	return fullName + ", " + assembly
}

// ParseQualifiedName splits an assembly-qualified name into its full name and assembly name.
// Version, culture and key token components are discarded. Commas nested in generic
// brackets do not split.
func ParseQualifiedName(aqn string) (fullName, assembly string) {
	depth := 0
	for i, r := range aqn {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				fullName = strings.TrimSpace(aqn[:i])
				rest := aqn[i+1:]
				if j := strings.IndexByte(rest, ','); j >= 0 {
					rest = rest[:j]
				}
				return fullName, strings.TrimSpace(rest)
			}
		}
	}
	return strings.TrimSpace(aqn), ""
}

// SplitFullName splits a full type name into namespace and simple name.
func SplitFullName(fullName string) (namespace, name string) {
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		return fullName[:i], fullName[i+1:]
	}
	return "", fullName
}
