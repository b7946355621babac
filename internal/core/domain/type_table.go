package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// TypeTable is a symbol table over the types of a set of assemblies, keyed by full name.
type TypeTable struct {
	types map[string]*Type
	order []string
}

// NewTypeTable creates a table populated with the types of the given assemblies.
// It returns an error if two assemblies declare the same full name.
func NewTypeTable(assemblies ...*Assembly) (*TypeTable, error) {
	tt := &TypeTable{types: make(map[string]*Type)}
	for _, asm := range assemblies {
		if err := tt.AddAssembly(asm); err != nil {
			return nil, err
		}
	}
	return tt, nil
}

// AddAssembly adds every type of asm to the table.
func (tt *TypeTable) AddAssembly(asm *Assembly) error {
	for _, t := range asm.Types {
		name := t.FullName()
		if existing, ok := tt.types[name]; ok {
			err := zerr.With(zerr.Wrap(ErrDuplicateType, "type declared twice"), "type", name)
			err = zerr.With(err, "assembly", asm.Name)
			return zerr.With(err, "previous_assembly", existing.Assembly)
		}
		tt.types[name] = t
		tt.order = append(tt.order, name)
	}
	return nil
}

// Lookup resolves a full or assembly-qualified type name.
func (tt *TypeTable) Lookup(name string) (*Type, bool) {
	fullName, _ := ParseQualifiedName(name)
	if t, ok := tt.types[fullName]; ok {
		return t, true
	}
	for key, t := range tt.types {
		if strings.EqualFold(key, fullName) {
			return t, true
		}
	}
	return nil, false
}

// Types returns every type in declaration order.
func (tt *TypeTable) Types() []*Type {
	out := make([]*Type, 0, len(tt.order))
	for _, name := range tt.order {
		out = append(out, tt.types[name])
	}
	return out
}

// BaseChain returns the base types of t from the nearest ancestor outwards.
// Base types that are not in the table end the chain.
func (tt *TypeTable) BaseChain(t *Type) []*Type {
	var chain []*Type
	seen := map[string]bool{t.FullName(): true}
	for cur := t; cur.BaseType != ""; {
		base, ok := tt.Lookup(cur.BaseType)
		if !ok || seen[base.FullName()] {
			break
		}
		seen[base.FullName()] = true
		chain = append(chain, base)
		cur = base
	}
	return chain
}

// DerivesFrom reports whether t has baseName anywhere in its base chain, including bases that
// are only known by name.
func (tt *TypeTable) DerivesFrom(t *Type, baseName string) bool {
	for cur := t; cur != nil && cur.BaseType != ""; {
		if strings.EqualFold(cur.BaseType, baseName) {
			return true
		}
		next, ok := tt.Lookup(cur.BaseType)
		if !ok || next == t {
			return false
		}
		cur = next
	}
	return false
}

// IsStrictlyDerived reports whether derived is a proper subclass of base.
func (tt *TypeTable) IsStrictlyDerived(derived, base *Type) bool {
	if derived == base {
		return false
	}
	return slices.Contains(tt.BaseChain(derived), base)
}

// IsEnum reports whether name resolves to an enum type.
func (tt *TypeTable) IsEnum(name string) bool {
	t, ok := tt.Lookup(name)
	return ok && t.Kind == KindEnum
}
