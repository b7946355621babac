// Package codedom is the language-neutral graph of generated client code.
// Language emitters render it; code processors may rewrite it before rendering.
package codedom

import (
	"iter"
	"strings"
)

// CompileUnit is the root of a generated code graph.
type CompileUnit struct {
	Namespaces []*Namespace
}

// Namespace returns the namespace with the given name, creating it when absent.
func (u *CompileUnit) Namespace(name string) *Namespace {
	for _, ns := range u.Namespaces {
		if ns.Name == name {
			return ns
		}
	}
	ns := &Namespace{Name: name}
	u.Namespaces = append(u.Namespaces, ns)
	return ns
}

// Types yields every type declaration in the unit.
func (u *CompileUnit) Types() iter.Seq[*TypeDecl] {
	return func(yield func(*TypeDecl) bool) {
		for _, ns := range u.Namespaces {
			for _, t := range ns.Types {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Namespace groups type declarations.
type Namespace struct {
	Name    string
	Imports []string
	Types   []*TypeDecl
}

// AddImport records an import once.
func (n *Namespace) AddImport(name string) {
	if name == "" || name == n.Name {
		return
	}
	for _, existing := range n.Imports {
		if existing == name {
			return
		}
	}
	n.Imports = append(n.Imports, name)
}

// TypeKind distinguishes declaration kinds.
type TypeKind int

const (
	// KindClass is a class declaration.
	KindClass TypeKind = iota
	// KindEnum is an enum declaration.
	KindEnum
)

// TypeDecl is a generated type.
type TypeDecl struct {
	Name       string
	Namespace  string
	Kind       TypeKind
	Partial    bool
	Sealed     bool
	BaseTypes  []TypeRef
	Attributes []Attribute
	Members    []*Member
	EnumValues []EnumMember
	Comment    string
}

// FullName returns the namespace-qualified name of the declaration.
func (t *TypeDecl) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Member returns the first member named name.
func (t *TypeDecl) Member(name string) *Member {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// EnumMember is a constant of a generated enum.
type EnumMember struct {
	Name  string
	Value int64
}

// TypeRef references a type by full name.
type TypeRef struct {
	Name     string
	Args     []TypeRef
	Nullable bool
	Array    bool
}

// Ref creates a reference to a named type.
func Ref(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Args: args}
}

// Namespace returns the namespace portion of the reference.
func (r TypeRef) Namespace() string {
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[:i]
	}
	return ""
}

// ShortName returns the simple name of the reference.
func (r TypeRef) ShortName() string {
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}

// IsVoid reports whether the reference denotes no value.
func (r TypeRef) IsVoid() bool {
	return r.Name == "" || r.Name == "System.Void"
}

// LiteralKind selects how an attribute argument is rendered.
type LiteralKind int

const (
	// LitString renders a quoted string.
	LitString LiteralKind = iota
	// LitBool renders a boolean.
	LitBool
	// LitTypeOf renders a type-of expression over a full type name.
	LitTypeOf
	// LitRaw renders the value verbatim.
	LitRaw
)

// Literal is an attribute argument.
type Literal struct {
	Kind  LiteralKind
	Name  string
	Value string
}

// Str creates a positional string literal.
func Str(v string) Literal { return Literal{Kind: LitString, Value: v} }

// TypeOf creates a positional type-of literal.
func TypeOf(fullName string) Literal { return Literal{Kind: LitTypeOf, Value: fullName} }

// Attribute is an attribute applied to a declaration.
type Attribute struct {
	Type TypeRef
	Args []Literal
}

// MemberKind selects how an emitter renders a member body.
type MemberKind int

const (
	// MemberField is a private backing field.
	MemberField MemberKind = iota
	// MemberDataProperty is a change-tracked scalar property.
	MemberDataProperty
	// MemberAssociation is a navigation property over an entity reference or collection.
	MemberAssociation
	// MemberEntitySet is a context property returning an entity set.
	MemberEntitySet
	// MemberGuard is a CanXxx property for a named update method.
	MemberGuard
	// MemberInvoked is an IsXxxInvoked property for a named update method.
	MemberInvoked
	// MemberCustomMethod invokes a named update method on an entity.
	MemberCustomMethod
	// MemberPartialHook is a partial method declaration without a body.
	MemberPartialHook
	// MemberQueryFactory is a context method creating a query.
	MemberQueryFactory
	// MemberInvokeOperation is a context method calling an invoke operation.
	MemberInvokeOperation
	// MemberContextCustom forwards a named update method from the context to the entity.
	MemberContextCustom
	// MemberGetIdentity returns the entity key.
	MemberGetIdentity
	// MemberContextConstructor is a context constructor taking a service URI.
	MemberContextConstructor
	// MemberDefaultConstructor is a parameterless constructor.
	MemberDefaultConstructor
)

// Param is a method parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Member is a generated member.
type Member struct {
	Kind       MemberKind
	Name       string
	Type       TypeRef
	Attributes []Attribute
	Parameters []Param
	// Field names the backing field of a property.
	Field string
	// Target names the server operation, action or entity type the member forwards to.
	// Entity sets carry their comma separated set operations and context constructors the
	// relative service address.
	Target         string
	Keys           []string
	ThisKey        []string
	OtherKey       []string
	Collection     bool
	HasSideEffects bool
	IsComposable   bool
	Comment        string
}
