// Package csharp renders generated client code as C#.
package csharp

import (
	"fmt"
	"strings"

	"go.trai.ch/riagen/internal/adapters/emit/emitutil"
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CodeEmitter = (*Emitter)(nil)

const header = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by riagen.
//
//     Changes to this file may cause incorrect behavior and will be lost if
//     the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

// Framework types the emitter writes without a graph reference.
const (
	typeEntityContainer     = "OpenRiaServices.Client.EntityContainer"
	typeEntitySetOperations = "OpenRiaServices.Client.EntitySetOperations"
	typeEntityKey           = "OpenRiaServices.Client.EntityKey"
	typeDomainContext       = "OpenRiaServices.Client.DomainContext"
	typeDictionary          = "System.Collections.Generic.Dictionary"
	typeUri                 = "System.Uri"
	typeUriKind             = "System.UriKind"
)

var aliases = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.SByte":   "sbyte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Single":  "float",
	"System.Int16":   "short",
	"System.Int32":   "int",
	"System.Int64":   "long",
	"System.UInt16":  "ushort",
	"System.UInt32":  "uint",
	"System.UInt64":  "ulong",
	"System.Object":  "object",
	"System.String":  "string",
	"System.Void":    "void",
}

var referenceTypes = map[string]bool{
	"System.String": true,
	"System.Object": true,
	"System.Uri":    true,
}

var keywords = map[string]bool{}

func init() {
	for _, k := range strings.Fields(`abstract as base bool break byte case catch char checked class const
		continue decimal default delegate do double else enum event explicit extern false finally fixed
		float for foreach goto if implicit in int interface internal is lock long namespace new null
		object operator out override params private protected public readonly ref return sbyte sealed
		short sizeof stackalloc static string struct switch this throw true try typeof uint ulong
		unchecked unsafe ushort using virtual void volatile while`) {
		keywords[k] = true
	}
}

// Emitter renders code graphs as C#.
type Emitter struct{}

// New creates a C# emitter.
func New() *Emitter {
	return &Emitter{}
}

// Language returns C#.
func (*Emitter) Language() domain.Language { return domain.LanguageCSharp }

// FileExtension returns ".cs".
func (*Emitter) FileExtension() string { return ".cs" }

// EscapeIdentifier prefixes keywords with @.
func (*Emitter) EscapeIdentifier(name string) string {
	if keywords[name] {
		return "@" + name
	}
	return name
}

// Emit renders unit. The auto-generated header is always written, even for an empty unit.
func (e *Emitter) Emit(unit *codedom.CompileUnit, opts domain.GenerationOptions) (string, error) {
	var out strings.Builder
	out.WriteString(header)
	if unit == nil {
		return out.String(), nil
	}

	namer := emitutil.NewNamer(unit, opts.UseFullTypeNames, "global::", aliases,
		typeEntityContainer, typeEntitySetOperations, typeEntityKey, typeDomainContext,
		typeDictionary, typeUri, typeUriKind)

	for _, ns := range unit.Namespaces {
		namer.Begin(ns.Name)
		depth := 1
		if ns.Name == "" {
			depth = 0
		}
		r := &renderer{e: e, n: namer, w: emitutil.NewWriter("    ")}
		for range depth {
			r.w.In()
		}
		for i, decl := range ns.Types {
			if i > 0 {
				r.w.Line("")
			}
			if err := r.typeDecl(decl); err != nil {
				return "", zerr.With(err, "namespace", ns.Name)
			}
		}

		imports := namer.Imports()
		for _, imp := range ns.Imports {
			if !containsString(imports, imp) && imp != ns.Name {
				imports = append(imports, imp)
			}
		}

		out.WriteString("\n")
		indent := ""
		if depth > 0 {
			fmt.Fprintf(&out, "namespace %s\n{\n", ns.Name)
			indent = "    "
		}
		for _, imp := range imports {
			fmt.Fprintf(&out, "%susing %s;\n", indent, imp)
		}
		if len(imports) > 0 && r.w.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(r.w.String())
		if depth > 0 {
			out.WriteString("}\n")
		}
	}
	return out.String(), nil
}

type renderer struct {
	e *Emitter
	n *emitutil.Namer
	w *emitutil.Writer
}

func (r *renderer) typeRef(t codedom.TypeRef) string {
	if t.IsVoid() {
		return "void"
	}
	name := r.n.Name(t.Name)
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = r.typeRef(a)
		}
		name += "<" + strings.Join(args, ", ") + ">"
	}
	if t.Nullable && !t.Array && len(t.Args) == 0 && !referenceTypes[t.Name] {
		name += "?"
	}
	if t.Array {
		name += "[]"
	}
	return name
}

func (r *renderer) literal(l codedom.Literal) string {
	var v string
	switch l.Kind {
	case codedom.LitString:
		v = quote(l.Value)
	case codedom.LitBool:
		v = strings.ToLower(l.Value)
	case codedom.LitTypeOf:
		v = "typeof(" + r.typeRef(codedom.Ref(l.Value)) + ")"
	default:
		v = l.Value
	}
	if l.Name != "" {
		return l.Name + "=" + v
	}
	return v
}

func (r *renderer) attributes(list []codedom.Attribute) {
	for _, a := range list {
		args := make([]string, len(a.Args))
		for i, l := range a.Args {
			args[i] = r.literal(l)
		}
		r.w.Line("[%s(%s)]", r.n.AttributeName(a.Type.Name), strings.Join(args, ", "))
	}
}

func (r *renderer) comment(text string) {
	if text == "" {
		return
	}
	r.w.Line("/// <summary>")
	for _, line := range strings.Split(text, "\n") {
		r.w.Line("/// %s", xmlEscape(line))
	}
	r.w.Line("/// </summary>")
}

func (r *renderer) typeDecl(decl *codedom.TypeDecl) error {
	r.comment(decl.Comment)
	r.attributes(decl.Attributes)

	if decl.Kind == codedom.KindEnum {
		r.w.Line("public enum %s", r.e.EscapeIdentifier(decl.Name))
		r.w.Line("{")
		r.w.In()
		for i, v := range decl.EnumValues {
			if i > 0 {
				r.w.Line("")
			}
			r.w.Line("%s = %d,", r.e.EscapeIdentifier(v.Name), v.Value)
		}
		r.w.Out()
		r.w.Line("}")
		return nil
	}

	mods := "public "
	if decl.Sealed {
		mods += "sealed "
	}
	if decl.Partial {
		mods += "partial "
	}
	line := mods + "class " + r.e.EscapeIdentifier(decl.Name)
	if len(decl.BaseTypes) > 0 {
		bases := make([]string, len(decl.BaseTypes))
		for i, b := range decl.BaseTypes {
			bases[i] = r.typeRef(b)
		}
		line += " : " + strings.Join(bases, ", ")
	}
	r.w.Line(line)
	r.w.Line("{")
	r.w.In()

	wrote := false
	sep := func() {
		if wrote {
			r.w.Line("")
		}
		wrote = true
	}

	for _, m := range decl.Members {
		if m.Kind == codedom.MemberField {
			r.w.Line("private %s %s;", r.typeRef(m.Type), m.Name)
			wrote = true
		}
	}

	var hooks []*codedom.Member
	for _, m := range decl.Members {
		if m.Kind == codedom.MemberPartialHook {
			hooks = append(hooks, m)
		}
	}
	if len(hooks) > 0 {
		sep()
		r.w.Line("#region Extensibility Method Definitions")
		r.w.Line("")
		for _, h := range hooks {
			r.w.Line("partial void %s(%s);", h.Name, r.params(h.Parameters))
		}
		r.w.Line("")
		r.w.Line("#endregion")
	}

	hasSets := false
	for _, m := range decl.Members {
		if m.Kind == codedom.MemberField || m.Kind == codedom.MemberPartialHook {
			continue
		}
		if m.Kind == codedom.MemberEntitySet {
			hasSets = true
		}
		sep()
		if err := r.member(decl, m); err != nil {
			return zerr.With(err, "type", decl.FullName())
		}
	}

	if hasSets {
		sep()
		r.entityContainer(decl)
	}

	r.w.Out()
	r.w.Line("}")
	return nil
}

func (r *renderer) member(decl *codedom.TypeDecl, m *codedom.Member) error {
	name := r.e.EscapeIdentifier(m.Name)
	r.comment(m.Comment)
	r.attributes(m.Attributes)

	switch m.Kind {
	case codedom.MemberDefaultConstructor:
		if m.Target != "" {
			r.w.Line("public %s() : ", name)
			r.w.Line("        this(new %s(%s, %s.Relative))", r.n.Name(typeUri), quote(m.Target), r.n.Name(typeUriKind))
			r.w.Line("{")
			r.w.Line("}")
			return nil
		}
		r.w.Line("public %s()", name)
		r.block(func() {
			if hasMember(decl, "OnCreated") {
				r.w.Line("this.OnCreated();")
			}
		})

	case codedom.MemberContextConstructor:
		r.w.Line("public %s(%s) : ", name, r.params(m.Parameters))
		r.w.Line("        base(%s.CreateDomainClient(%s, false))", r.n.Name(typeDomainContext), r.args(m.Parameters))
		r.block(func() {
			if hasMember(decl, "OnCreated") {
				r.w.Line("this.OnCreated();")
			}
		})

	case codedom.MemberDataProperty:
		r.w.Line("public %s %s", r.typeRef(m.Type), name)
		r.block(func() {
			r.w.Line("get")
			r.block(func() { r.w.Line("return this.%s;", m.Field) })
			r.w.Line("set")
			r.block(func() {
				r.w.Line("if ((this.%s != value))", m.Field)
				r.block(func() {
					r.w.Line("this.On%sChanging(value);", m.Name)
					r.w.Line("this.RaiseDataMemberChanging(%s);", quote(m.Name))
					r.w.Line("this.ValidateProperty(%s, value);", quote(m.Name))
					r.w.Line("this.%s = value;", m.Field)
					r.w.Line("this.RaiseDataMemberChanged(%s);", quote(m.Name))
					r.w.Line("this.On%sChanged();", m.Name)
				})
			})
		})

	case codedom.MemberAssociation:
		r.association(m, name)

	case codedom.MemberEntitySet:
		r.w.Line("public %s %s", r.typeRef(m.Type), name)
		r.block(func() {
			r.w.Line("get")
			r.block(func() {
				r.w.Line("return base.EntityContainer.GetEntitySet<%s>();", r.typeRef(m.Type.Args[0]))
			})
		})

	case codedom.MemberGuard:
		r.w.Line("public %s %s", r.typeRef(m.Type), name)
		r.block(func() {
			r.w.Line("get")
			r.block(func() { r.w.Line("return base.CanInvokeAction(%s);", quote(m.Target)) })
		})

	case codedom.MemberInvoked:
		r.w.Line("public %s %s", r.typeRef(m.Type), name)
		r.block(func() {
			r.w.Line("get")
			r.block(func() { r.w.Line("return base.IsActionInvoked(%s);", quote(m.Target)) })
		})

	case codedom.MemberCustomMethod:
		r.w.Line("public void %s(%s)", name, r.params(m.Parameters))
		r.block(func() {
			args := r.args(m.Parameters)
			r.w.Line("this.On%sInvoking(%s);", m.Name, args)
			if args != "" {
				r.w.Line("base.InvokeAction(%s, %s);", quote(m.Target), args)
			} else {
				r.w.Line("base.InvokeAction(%s);", quote(m.Target))
			}
			r.w.Line("this.On%sInvoked();", m.Name)
		})

	case codedom.MemberContextCustom:
		r.w.Line("public void %s(%s)", name, r.params(m.Parameters))
		r.block(func() {
			entity := r.e.EscapeIdentifier(m.Parameters[0].Name)
			r.w.Line("%s.%s(%s);", entity, m.Target, r.args(m.Parameters[1:]))
		})

	case codedom.MemberQueryFactory:
		r.w.Line("public %s %s(%s)", r.typeRef(m.Type), name, r.params(m.Parameters))
		r.block(func() {
			r.parameterDictionary(m.Parameters)
			r.w.Line("this.ValidateMethod(%s, %s);", quote(m.Name), paramsVar(m.Parameters))
			r.w.Line("return base.CreateQuery<%s>(%s, %s, false, %t);",
				r.typeRef(m.Type.Args[0]), quote(m.Target), paramsVar(m.Parameters), m.IsComposable)
		})

	case codedom.MemberInvokeOperation:
		r.w.Line("public %s %s(%s)", r.typeRef(m.Type), name, r.params(m.Parameters))
		r.block(func() {
			r.parameterDictionary(m.Parameters)
			r.w.Line("this.ValidateMethod(%s, %s);", quote(m.Name), paramsVar(m.Parameters))
			if len(m.Type.Args) == 0 {
				r.w.Line("return this.InvokeOperation(%s, typeof(void), %s, %t, null, null);",
					quote(m.Target), paramsVar(m.Parameters), m.HasSideEffects)
				return
			}
			ret := r.typeRef(m.Type.Args[0])
			r.w.Line("return this.InvokeOperation<%s>(%s, typeof(%s), %s, %t, null, null);",
				ret, quote(m.Target), ret, paramsVar(m.Parameters), m.HasSideEffects)
		})

	case codedom.MemberGetIdentity:
		r.w.Line("public override object GetIdentity()")
		r.block(func() {
			if len(m.Keys) == 1 {
				r.w.Line("return this.%s;", r.e.EscapeIdentifier(m.Keys[0]))
				return
			}
			keys := make([]string, len(m.Keys))
			for i, k := range m.Keys {
				keys[i] = "this." + r.e.EscapeIdentifier(k)
			}
			r.w.Line("return %s.Create(%s);", r.n.Name(typeEntityKey), strings.Join(keys, ", "))
		})

	default:
		return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, "unsupported member kind"), "member", m.Name)
	}
	return nil
}

func (r *renderer) association(m *codedom.Member, name string) {
	target := r.typeRef(codedom.Ref(m.Target))
	filter := "Filter" + m.Name
	r.w.Line("public %s %s", r.typeRef(m.Type), name)
	r.block(func() {
		r.w.Line("get")
		r.block(func() {
			r.w.Line("if ((this.%s == null))", m.Field)
			r.block(func() {
				r.w.Line("this.%s = new %s(this, %s, this.%s);", m.Field, r.fieldType(m), quote(m.Name), filter)
			})
			if m.Collection {
				r.w.Line("return this.%s;", m.Field)
			} else {
				r.w.Line("return this.%s.Entity;", m.Field)
			}
		})
		if m.Collection {
			return
		}
		r.w.Line("set")
		r.block(func() {
			r.w.Line("%s previous = this.%s;", target, name)
			r.w.Line("if ((previous != value))")
			r.block(func() {
				r.w.Line("this.ValidateProperty(%s, value);", quote(m.Name))
				r.w.Line("this.%s.Entity = value;", m.Field)
				r.w.Line("this.RaisePropertyChanged(%s);", quote(m.Name))
			})
		})
	})
	r.w.Line("")
	r.w.Line("private bool %s(%s entity)", filter, target)
	r.block(func() {
		conds := make([]string, len(m.OtherKey))
		for i := range m.OtherKey {
			own := ""
			if i < len(m.ThisKey) {
				own = m.ThisKey[i]
			}
			conds[i] = fmt.Sprintf("(entity.%s == this.%s)", m.OtherKey[i], own)
		}
		if len(conds) == 0 {
			conds = []string{"true"}
		}
		r.w.Line("return %s;", strings.Join(conds, " && "))
	})
}

func (r *renderer) fieldType(m *codedom.Member) string {
	if m.Collection {
		return r.typeRef(m.Type)
	}
	return r.n.Name("OpenRiaServices.Client.EntityRef") + "<" + r.typeRef(codedom.Ref(m.Target)) + ">"
}

func (r *renderer) entityContainer(decl *codedom.TypeDecl) {
	container := decl.Name + "EntityContainer"
	ops := r.n.Name(typeEntitySetOperations)
	r.w.Line("protected override %s CreateEntityContainer()", r.n.Name(typeEntityContainer))
	r.block(func() { r.w.Line("return new %s();", container) })
	r.w.Line("")
	r.w.Line("internal sealed class %s : %s", container, r.n.Name(typeEntityContainer))
	r.block(func() {
		r.w.Line("public %s()", container)
		r.block(func() {
			for _, m := range decl.Members {
				if m.Kind != codedom.MemberEntitySet {
					continue
				}
				parts := strings.Split(m.Target, ", ")
				for i, p := range parts {
					parts[i] = ops + "." + p
				}
				r.w.Line("this.CreateEntitySet<%s>(%s);", r.typeRef(m.Type.Args[0]), strings.Join(parts, " | "))
			}
		})
	})
}

func (r *renderer) parameterDictionary(params []codedom.Param) {
	if len(params) == 0 {
		return
	}
	dict := r.n.Name(typeDictionary) + "<string, object>"
	r.w.Line("%s parameters = new %s();", dict, dict)
	for _, p := range params {
		r.w.Line("parameters.Add(%s, %s);", quote(p.Name), r.e.EscapeIdentifier(p.Name))
	}
}

func paramsVar(params []codedom.Param) string {
	if len(params) == 0 {
		return "null"
	}
	return "parameters"
}

func (r *renderer) block(body func()) {
	r.w.Line("{")
	r.w.In()
	body()
	r.w.Out()
	r.w.Line("}")
}

func (r *renderer) params(params []codedom.Param) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = r.typeRef(p.Type) + " " + r.e.EscapeIdentifier(p.Name)
	}
	return strings.Join(out, ", ")
}

func (r *renderer) args(params []codedom.Param) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = r.e.EscapeIdentifier(p.Name)
	}
	return strings.Join(out, ", ")
}

func hasMember(decl *codedom.TypeDecl, name string) bool {
	return decl.Member(name) != nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
