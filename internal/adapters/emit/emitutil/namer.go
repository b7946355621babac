package emitutil

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/riagen/internal/core/codedom"
)

// Namer renders type names either short, with the namespace imported, or fully qualified.
// A short name that would resolve to more than one type in the unit is always qualified.
type Namer struct {
	full      bool
	global    string
	aliases   map[string]string
	ambiguous map[string]bool
	current   string
	imports   map[string]bool
}

// NewNamer creates a namer. global prefixes qualified names; aliases map full names to
// language keywords.
func NewNamer(unit *codedom.CompileUnit, useFullTypeNames bool, global string, aliases map[string]string, extra ...string) *Namer {
	n := &Namer{
		full:      useFullTypeNames,
		global:    global,
		aliases:   aliases,
		ambiguous: make(map[string]bool),
		imports:   make(map[string]bool),
	}

	seen := make(map[string]map[string]bool)
	add := func(full string) {
		if full == "" {
			return
		}
		if _, ok := aliases[full]; ok {
			return
		}
		short := shortName(full)
		if seen[short] == nil {
			seen[short] = make(map[string]bool)
		}
		seen[short][full] = true
	}
	for _, e := range extra {
		add(e)
	}
	for _, name := range References(unit) {
		add(name)
	}
	for short, fulls := range seen {
		if len(fulls) > 1 {
			n.ambiguous[short] = true
		}
	}
	return n
}

// Begin starts a namespace scope and clears the collected imports.
func (n *Namer) Begin(namespace string) {
	n.current = namespace
	n.imports = make(map[string]bool)
}

// Name renders a full type name without generic arguments or decorations.
func (n *Namer) Name(full string) string {
	if alias, ok := n.aliases[full]; ok {
		return alias
	}
	ns, short := splitName(full)
	if ns == "" {
		return short
	}
	if n.full || n.ambiguous[short] {
		return n.global + full
	}
	if ns != n.current {
		n.imports[ns] = true
	}
	return short
}

// AttributeName renders an attribute type, dropping the Attribute suffix when the name is short.
func (n *Namer) AttributeName(full string) string {
	name := n.Name(full)
	if strings.Contains(name, ".") {
		return name
	}
	return strings.TrimSuffix(name, "Attribute")
}

// Imports returns the namespaces used by short names since the last Begin. System namespaces
// sort first.
func (n *Namer) Imports() []string {
	out := slices.Collect(maps.Keys(n.imports))
	slices.SortFunc(out, func(a, b string) int {
		sa, sb := isSystem(a), isSystem(b)
		if sa != sb {
			if sa {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return out
}

// References lists every full type name the unit mentions, declarations included.
func References(unit *codedom.CompileUnit) []string {
	var out []string
	var ref func(r codedom.TypeRef)
	ref = func(r codedom.TypeRef) {
		out = append(out, r.Name)
		for _, a := range r.Args {
			ref(a)
		}
	}
	attrs := func(list []codedom.Attribute) {
		for _, a := range list {
			ref(a.Type)
			for _, lit := range a.Args {
				if lit.Kind == codedom.LitTypeOf {
					out = append(out, lit.Value)
				}
			}
		}
	}
	for decl := range unit.Types() {
		out = append(out, decl.FullName())
		for _, b := range decl.BaseTypes {
			ref(b)
		}
		attrs(decl.Attributes)
		for _, m := range decl.Members {
			ref(m.Type)
			attrs(m.Attributes)
			for _, p := range m.Parameters {
				ref(p.Type)
			}
		}
	}
	return out
}

func isSystem(ns string) bool {
	return ns == "System" || strings.HasPrefix(ns, "System.")
}

func splitName(full string) (string, string) {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}

func shortName(full string) string {
	_, short := splitName(full)
	return short
}
