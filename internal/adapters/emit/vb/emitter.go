// Package vb renders generated client code as Visual Basic.
package vb

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/riagen/internal/adapters/emit/emitutil"
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CodeEmitter = (*Emitter)(nil)

const header = `'------------------------------------------------------------------------------
' <auto-generated>
'     This code was generated by riagen.
'
'     Changes to this file may cause incorrect behavior and will be lost if
'     the code is regenerated.
' </auto-generated>
'------------------------------------------------------------------------------

Option Compare Binary
Option Infer On
Option Strict On
Option Explicit On
`

const (
	typeEntityContainer     = "OpenRiaServices.Client.EntityContainer"
	typeEntitySetOperations = "OpenRiaServices.Client.EntitySetOperations"
	typeEntityKey           = "OpenRiaServices.Client.EntityKey"
	typeEntityRef           = "OpenRiaServices.Client.EntityRef"
	typeDomainContext       = "OpenRiaServices.Client.DomainContext"
	typeDictionary          = "System.Collections.Generic.Dictionary"
	typeUri                 = "System.Uri"
	typeUriKind             = "System.UriKind"
)

var aliases = map[string]string{
	"System.Boolean":  "Boolean",
	"System.Byte":     "Byte",
	"System.SByte":    "SByte",
	"System.Char":     "Char",
	"System.DateTime": "Date",
	"System.Decimal":  "Decimal",
	"System.Double":   "Double",
	"System.Single":   "Single",
	"System.Int16":    "Short",
	"System.Int32":    "Integer",
	"System.Int64":    "Long",
	"System.UInt16":   "UShort",
	"System.UInt32":   "UInteger",
	"System.UInt64":   "ULong",
	"System.Object":   "Object",
	"System.String":   "String",
}

var referenceTypes = map[string]bool{
	"System.String": true,
	"System.Object": true,
	"System.Uri":    true,
}

var keywords = map[string]bool{}

func init() {
	for _, k := range strings.Fields(`addhandler addressof alias and andalso as boolean byref byte byval
		call case catch cbool cbyte cchar cdate cdbl cdec char cint class clng cobj const continue csbyte
		cshort csng cstr ctype cuint culng cushort date decimal declare default delegate dim directcast do
		double each else elseif end enum erase error event exit false finally for friend function get
		gettype global gosub goto handles if implements imports in inherits integer interface is isnot
		let lib like long loop me mod module mustinherit mustoverride mybase myclass namespace narrowing
		new next not nothing notinheritable notoverridable object of on operator option optional or
		orelse overloads overridable overrides paramarray partial private property protected public
		raiseevent readonly redim rem removehandler resume return sbyte select set shadows shared short
		single static step stop string structure sub synclock then throw to true try trycast typeof
		uinteger ulong ushort using variant wend when while widening with withevents writeonly xor`) {
		keywords[k] = true
	}
}

// Emitter renders code graphs as Visual Basic.
type Emitter struct{}

// New creates a Visual Basic emitter.
func New() *Emitter {
	return &Emitter{}
}

// Language returns VB.
func (*Emitter) Language() domain.Language { return domain.LanguageVisualBasic }

// FileExtension returns ".vb".
func (*Emitter) FileExtension() string { return ".vb" }

// EscapeIdentifier brackets keywords. Keywords are matched without regard to case.
func (*Emitter) EscapeIdentifier(name string) string {
	if keywords[strings.ToLower(name)] {
		return "[" + name + "]"
	}
	return name
}

// Emit renders unit. Namespace declarations are written relative to the client root namespace
// because the compiler prefixes it to every declaration.
func (e *Emitter) Emit(unit *codedom.CompileUnit, opts domain.GenerationOptions) (string, error) {
	var out strings.Builder
	out.WriteString(header)
	if unit == nil {
		return out.String(), nil
	}

	namer := emitutil.NewNamer(unit, opts.UseFullTypeNames, "Global.", aliases,
		typeEntityContainer, typeEntitySetOperations, typeEntityKey, typeEntityRef,
		typeDomainContext, typeDictionary, typeUri, typeUriKind)

	body := emitutil.NewWriter("    ")
	var imports []string
	for _, ns := range unit.Namespaces {
		namer.Begin(ns.Name)
		declared := StripRootNamespace(ns.Name, opts.ClientRootNamespace)

		r := &renderer{e: e, n: namer, w: body}
		body.Line("")
		if declared != "" {
			body.Line("Namespace %s", declared)
			body.In()
		}
		for i, decl := range ns.Types {
			if i > 0 {
				body.Line("")
			}
			if err := r.typeDecl(decl); err != nil {
				return "", zerr.With(err, "namespace", ns.Name)
			}
		}
		if declared != "" {
			body.Out()
			body.Line("End Namespace")
		}

		for _, imp := range append(namer.Imports(), ns.Imports...) {
			if !slices.Contains(imports, imp) {
				imports = append(imports, imp)
			}
		}
	}

	if len(imports) > 0 {
		out.WriteString("\n")
		for _, imp := range imports {
			fmt.Fprintf(&out, "Imports %s\n", imp)
		}
	}
	out.WriteString(body.String())
	return out.String(), nil
}

// StripRootNamespace returns ns relative to root. A namespace outside root is returned as is.
func StripRootNamespace(ns, root string) string {
	if root == "" {
		return ns
	}
	if strings.EqualFold(ns, root) {
		return ""
	}
	if len(ns) > len(root) && strings.EqualFold(ns[:len(root)], root) && ns[len(root)] == '.' {
		return ns[len(root)+1:]
	}
	return ns
}

type renderer struct {
	e *Emitter
	n *emitutil.Namer
	w *emitutil.Writer
}

func (r *renderer) typeRef(t codedom.TypeRef) string {
	if t.IsVoid() {
		return r.n.Name("System.Void")
	}
	name := r.n.Name(t.Name)
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = r.typeRef(a)
		}
		name += "(Of " + strings.Join(args, ", ") + ")"
	}
	if t.Nullable && !t.Array && len(t.Args) == 0 && !referenceTypes[t.Name] {
		name += "?"
	}
	if t.Array {
		name += "()"
	}
	return name
}

func (r *renderer) literal(l codedom.Literal) string {
	var v string
	switch l.Kind {
	case codedom.LitString:
		v = quote(l.Value)
	case codedom.LitBool:
		if strings.EqualFold(l.Value, "true") {
			v = "True"
		} else {
			v = "False"
		}
	case codedom.LitTypeOf:
		v = "GetType(" + r.typeRef(codedom.Ref(l.Value)) + ")"
	default:
		v = l.Value
	}
	if l.Name != "" {
		return l.Name + ":=" + v
	}
	return v
}

func (r *renderer) attributes(list []codedom.Attribute) {
	for _, a := range list {
		args := make([]string, len(a.Args))
		for i, l := range a.Args {
			args[i] = r.literal(l)
		}
		r.w.Line("<%s(%s)> _", r.n.AttributeName(a.Type.Name), strings.Join(args, ", "))
	}
}

func (r *renderer) comment(text string) {
	if text == "" {
		return
	}
	r.w.Line("'''<summary>")
	for _, line := range strings.Split(text, "\n") {
		r.w.Line("''' %s", xmlEscape(line))
	}
	r.w.Line("'''</summary>")
}

func (r *renderer) typeDecl(decl *codedom.TypeDecl) error {
	r.comment(decl.Comment)
	r.attributes(decl.Attributes)
	name := r.e.EscapeIdentifier(decl.Name)

	if decl.Kind == codedom.KindEnum {
		r.w.Line("Public Enum %s", name)
		r.w.In()
		for i, v := range decl.EnumValues {
			if i > 0 {
				r.w.Line("")
			}
			r.w.Line("%s = %d", r.e.EscapeIdentifier(v.Name), v.Value)
		}
		r.w.Out()
		r.w.Line("End Enum")
		return nil
	}

	mods := ""
	if decl.Partial {
		mods += "Partial "
	}
	mods += "Public "
	if decl.Sealed {
		mods += "NotInheritable "
	}
	r.w.Line("%sClass %s", mods, name)
	r.w.In()
	for _, b := range decl.BaseTypes {
		r.w.Line("Inherits %s", r.typeRef(b))
	}

	r.w.Line("")
	for _, m := range decl.Members {
		if m.Kind == codedom.MemberField {
			r.w.Line("Private %s As %s", m.Name, r.typeRef(m.Type))
		}
	}

	var hooks []*codedom.Member
	for _, m := range decl.Members {
		if m.Kind == codedom.MemberPartialHook {
			hooks = append(hooks, m)
		}
	}
	if len(hooks) > 0 {
		r.w.Line("")
		r.w.Line(`#Region "Extensibility Method Definitions"`)
		for _, h := range hooks {
			r.w.Line("")
			r.w.Line("Partial Private Sub %s(%s)", h.Name, r.params(h.Parameters))
			r.w.Line("End Sub")
		}
		r.w.Line("")
		r.w.Line("#End Region")
	}

	hasSets := false
	for _, m := range decl.Members {
		if m.Kind == codedom.MemberField || m.Kind == codedom.MemberPartialHook {
			continue
		}
		if m.Kind == codedom.MemberEntitySet {
			hasSets = true
		}
		r.w.Line("")
		if err := r.member(decl, m); err != nil {
			return zerr.With(err, "type", decl.FullName())
		}
	}
	if hasSets {
		r.w.Line("")
		r.entityContainer(decl)
	}

	r.w.Out()
	r.w.Line("End Class")
	return nil
}

func (r *renderer) member(decl *codedom.TypeDecl, m *codedom.Member) error {
	name := r.e.EscapeIdentifier(m.Name)
	r.comment(m.Comment)
	r.attributes(m.Attributes)

	switch m.Kind {
	case codedom.MemberDefaultConstructor:
		r.w.Line("Public Sub New()")
		r.w.In()
		if m.Target != "" {
			r.w.Line("Me.New(New %s(%s, %s.Relative))", r.n.Name(typeUri), quote(m.Target), r.n.Name(typeUriKind))
		} else {
			r.w.Line("MyBase.New")
			if decl.Member("OnCreated") != nil {
				r.w.Line("Me.OnCreated")
			}
		}
		r.w.Out()
		r.w.Line("End Sub")

	case codedom.MemberContextConstructor:
		r.w.Line("Public Sub New(%s)", r.params(m.Parameters))
		r.w.In()
		r.w.Line("MyBase.New(%s.CreateDomainClient(%s, false))", r.n.Name(typeDomainContext), r.args(m.Parameters))
		if decl.Member("OnCreated") != nil {
			r.w.Line("Me.OnCreated")
		}
		r.w.Out()
		r.w.Line("End Sub")

	case codedom.MemberDataProperty:
		r.w.Line("Public Property %s() As %s", name, r.typeRef(m.Type))
		r.w.In()
		r.w.Line("Get")
		r.w.In()
		r.w.Line("Return Me.%s", m.Field)
		r.w.Out()
		r.w.Line("End Get")
		r.w.Line("Set")
		r.w.In()
		r.w.Line("If (Object.Equals(Me.%s, value) = false) Then", m.Field)
		r.w.In()
		r.w.Line("Me.On%sChanging(value)", m.Name)
		r.w.Line("Me.RaiseDataMemberChanging(%s)", quote(m.Name))
		r.w.Line("Me.ValidateProperty(%s, value)", quote(m.Name))
		r.w.Line("Me.%s = value", m.Field)
		r.w.Line("Me.RaiseDataMemberChanged(%s)", quote(m.Name))
		r.w.Line("Me.On%sChanged", m.Name)
		r.w.Out()
		r.w.Line("End If")
		r.w.Out()
		r.w.Line("End Set")
		r.w.Out()
		r.w.Line("End Property")

	case codedom.MemberAssociation:
		r.association(m, name)

	case codedom.MemberEntitySet:
		r.readOnly(name, r.typeRef(m.Type), fmt.Sprintf("Return MyBase.EntityContainer.GetEntitySet(Of %s)", r.typeRef(m.Type.Args[0])))

	case codedom.MemberGuard:
		r.readOnly(name, r.typeRef(m.Type), fmt.Sprintf("Return MyBase.CanInvokeAction(%s)", quote(m.Target)))

	case codedom.MemberInvoked:
		r.readOnly(name, r.typeRef(m.Type), fmt.Sprintf("Return MyBase.IsActionInvoked(%s)", quote(m.Target)))

	case codedom.MemberCustomMethod:
		args := r.args(m.Parameters)
		r.w.Line("Public Sub %s(%s)", name, r.params(m.Parameters))
		r.w.In()
		r.w.Line("Me.On%sInvoking(%s)", m.Name, args)
		if args != "" {
			r.w.Line("MyBase.InvokeAction(%s, %s)", quote(m.Target), args)
		} else {
			r.w.Line("MyBase.InvokeAction(%s)", quote(m.Target))
		}
		r.w.Line("Me.On%sInvoked", m.Name)
		r.w.Out()
		r.w.Line("End Sub")

	case codedom.MemberContextCustom:
		r.w.Line("Public Sub %s(%s)", name, r.params(m.Parameters))
		r.w.In()
		r.w.Line("%s.%s(%s)", r.e.EscapeIdentifier(m.Parameters[0].Name), m.Target, r.args(m.Parameters[1:]))
		r.w.Out()
		r.w.Line("End Sub")

	case codedom.MemberQueryFactory:
		r.w.Line("Public Function %s(%s) As %s", name, r.params(m.Parameters), r.typeRef(m.Type))
		r.w.In()
		r.parameterDictionary(m.Parameters)
		r.w.Line("Me.ValidateMethod(%s, %s)", quote(m.Name), paramsVar(m.Parameters))
		r.w.Line("Return MyBase.CreateQuery(Of %s)(%s, %s, false, %s)",
			r.typeRef(m.Type.Args[0]), quote(m.Target), paramsVar(m.Parameters), boolean(m.IsComposable))
		r.w.Out()
		r.w.Line("End Function")

	case codedom.MemberInvokeOperation:
		r.w.Line("Public Function %s(%s) As %s", name, r.params(m.Parameters), r.typeRef(m.Type))
		r.w.In()
		r.parameterDictionary(m.Parameters)
		r.w.Line("Me.ValidateMethod(%s, %s)", quote(m.Name), paramsVar(m.Parameters))
		if len(m.Type.Args) == 0 {
			r.w.Line("Return Me.InvokeOperation(%s, GetType(%s), %s, %s, Nothing, Nothing)",
				quote(m.Target), r.n.Name("System.Void"), paramsVar(m.Parameters), boolean(m.HasSideEffects))
		} else {
			ret := r.typeRef(m.Type.Args[0])
			r.w.Line("Return Me.InvokeOperation(Of %s)(%s, GetType(%s), %s, %s, Nothing, Nothing)",
				ret, quote(m.Target), ret, paramsVar(m.Parameters), boolean(m.HasSideEffects))
		}
		r.w.Out()
		r.w.Line("End Function")

	case codedom.MemberGetIdentity:
		r.w.Line("Public Overrides Function GetIdentity() As Object")
		r.w.In()
		if len(m.Keys) == 1 {
			r.w.Line("Return Me.%s", r.e.EscapeIdentifier(m.Keys[0]))
		} else {
			keys := make([]string, len(m.Keys))
			for i, k := range m.Keys {
				keys[i] = "Me." + r.e.EscapeIdentifier(k)
			}
			r.w.Line("Return %s.Create(%s)", r.n.Name(typeEntityKey), strings.Join(keys, ", "))
		}
		r.w.Out()
		r.w.Line("End Function")

	default:
		return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, "unsupported member kind"), "member", m.Name)
	}
	return nil
}

func (r *renderer) readOnly(name, typ, body string) {
	r.w.Line("Public ReadOnly Property %s() As %s", name, typ)
	r.w.In()
	r.w.Line("Get")
	r.w.In()
	r.w.Line(body)
	r.w.Out()
	r.w.Line("End Get")
	r.w.Out()
	r.w.Line("End Property")
}

func (r *renderer) association(m *codedom.Member, name string) {
	target := r.typeRef(codedom.Ref(m.Target))
	filter := "Filter" + m.Name
	fieldType := r.typeRef(m.Type)
	if !m.Collection {
		fieldType = r.n.Name(typeEntityRef) + "(Of " + target + ")"
	}

	if m.Collection {
		r.w.Line("Public ReadOnly Property %s() As %s", name, r.typeRef(m.Type))
	} else {
		r.w.Line("Public Property %s() As %s", name, r.typeRef(m.Type))
	}
	r.w.In()
	r.w.Line("Get")
	r.w.In()
	r.w.Line("If (Me.%s Is Nothing) Then", m.Field)
	r.w.In()
	r.w.Line("Me.%s = New %s(Me, %s, AddressOf Me.%s)", m.Field, fieldType, quote(m.Name), filter)
	r.w.Out()
	r.w.Line("End If")
	if m.Collection {
		r.w.Line("Return Me.%s", m.Field)
	} else {
		r.w.Line("Return Me.%s.Entity", m.Field)
	}
	r.w.Out()
	r.w.Line("End Get")
	if !m.Collection {
		r.w.Line("Set")
		r.w.In()
		r.w.Line("Dim previous As %s = Me.%s", target, name)
		r.w.Line("If (Not (previous Is value)) Then")
		r.w.In()
		r.w.Line("Me.ValidateProperty(%s, value)", quote(m.Name))
		r.w.Line("Me.%s.Entity = value", m.Field)
		r.w.Line("Me.RaisePropertyChanged(%s)", quote(m.Name))
		r.w.Out()
		r.w.Line("End If")
		r.w.Out()
		r.w.Line("End Set")
	}
	r.w.Out()
	r.w.Line("End Property")

	r.w.Line("")
	r.w.Line("Private Function %s(ByVal entity As %s) As Boolean", filter, target)
	r.w.In()
	conds := make([]string, len(m.OtherKey))
	for i := range m.OtherKey {
		own := ""
		if i < len(m.ThisKey) {
			own = m.ThisKey[i]
		}
		conds[i] = fmt.Sprintf("(entity.%s = Me.%s)", m.OtherKey[i], own)
	}
	if len(conds) == 0 {
		conds = []string{"True"}
	}
	r.w.Line("Return %s", strings.Join(conds, " AndAlso "))
	r.w.Out()
	r.w.Line("End Function")
}

func (r *renderer) entityContainer(decl *codedom.TypeDecl) {
	container := decl.Name + "EntityContainer"
	base := r.n.Name(typeEntityContainer)
	ops := r.n.Name(typeEntitySetOperations)

	r.w.Line("Protected Overrides Function CreateEntityContainer() As %s", base)
	r.w.In()
	r.w.Line("Return New %s()", container)
	r.w.Out()
	r.w.Line("End Function")
	r.w.Line("")
	r.w.Line("Friend NotInheritable Class %s", container)
	r.w.In()
	r.w.Line("Inherits %s", base)
	r.w.Line("")
	r.w.Line("Public Sub New()")
	r.w.In()
	r.w.Line("MyBase.New")
	for _, m := range decl.Members {
		if m.Kind != codedom.MemberEntitySet {
			continue
		}
		parts := strings.Split(m.Target, ", ")
		for i, p := range parts {
			parts[i] = ops + "." + p
		}
		r.w.Line("Me.CreateEntitySet(Of %s)(%s)", r.typeRef(m.Type.Args[0]), strings.Join(parts, " Or "))
	}
	r.w.Out()
	r.w.Line("End Sub")
	r.w.Out()
	r.w.Line("End Class")
}

func (r *renderer) parameterDictionary(params []codedom.Param) {
	if len(params) == 0 {
		return
	}
	dict := r.n.Name(typeDictionary) + "(Of String, Object)"
	r.w.Line("Dim parameters As %s = New %s()", dict, dict)
	for _, p := range params {
		r.w.Line("parameters.Add(%s, %s)", quote(p.Name), r.e.EscapeIdentifier(p.Name))
	}
}

func (r *renderer) params(params []codedom.Param) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = "ByVal " + r.e.EscapeIdentifier(p.Name) + " As " + r.typeRef(p.Type)
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

func paramsVar(params []codedom.Param) string {
	if len(params) == 0 {
		return "Nothing"
	}
	return "parameters"
}

func boolean(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
