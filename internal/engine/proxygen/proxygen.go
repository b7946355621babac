// Package proxygen turns a shaped client model into a code graph.
package proxygen

import (
	"fmt"
	"strings"
	"unicode"

	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/engine/shaping"
)

// Client framework types referenced by generated code.
const (
	TypeEntity           = "OpenRiaServices.Client.Entity"
	TypeDomainContext    = "OpenRiaServices.Client.DomainContext"
	TypeEntitySet        = "OpenRiaServices.Client.EntitySet"
	TypeEntityQuery      = "OpenRiaServices.Client.EntityQuery"
	TypeEntityCollection = "OpenRiaServices.Client.EntityCollection"
	TypeEntityRef        = "OpenRiaServices.Client.EntityRef"
	TypeInvokeOperation  = "OpenRiaServices.Client.InvokeOperation"

	AttrDataContract     = "System.Runtime.Serialization.DataContractAttribute"
	AttrDataMember       = "System.Runtime.Serialization.DataMemberAttribute"
	AttrKnownType        = "System.Runtime.Serialization.KnownTypeAttribute"
	AttrKey              = "System.ComponentModel.DataAnnotations.KeyAttribute"
	AttrAssociation      = "OpenRiaServices.AssociationAttribute"
	AttrComposition      = "OpenRiaServices.CompositionAttribute"
	AttrEntityAction     = "OpenRiaServices.Client.EntityActionAttribute"
	AttrDomainIdentifier = "OpenRiaServices.Client.DomainIdentifierAttribute"
)

const dataContractPrefix = "http://schemas.datacontract.org/2004/07/"

// Build renders model into a compile unit. It returns the unit and a mapping from the full
// name of every generated entity to its declaration.
func Build(model *domain.ClientModel, log ports.Logger) (*codedom.CompileUnit, map[string]*codedom.TypeDecl) {
	unit := &codedom.CompileUnit{}
	mapping := make(map[string]*codedom.TypeDecl)

	derived := make(map[*domain.ClientEntity]bool)
	for _, e := range model.Entities {
		if e.Base != nil {
			derived[e.Base] = true
		}
	}

	for _, e := range model.Entities {
		if e.Shared == domain.SharedByReference {
			continue
		}
		decl := entityDecl(e, !derived[e])
		addType(unit, decl)
		mapping[e.Type.FullName()] = decl
	}
	for _, en := range model.Enums {
		if en.Shared.IsShared() {
			continue
		}
		addType(unit, enumDecl(en.Type))
	}
	for _, ctx := range model.Services {
		if ctx.Shared.IsShared() {
			log.Info(fmt.Sprintf("shared domain context %s skipped", qualify(ctx.Namespace, ctx.Name)))
			continue
		}
		addType(unit, contextDecl(ctx))
	}
	return unit, mapping
}

func addType(unit *codedom.CompileUnit, decl *codedom.TypeDecl) {
	ns := unit.Namespace(decl.Namespace)
	ns.Types = append(ns.Types, decl)
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

func entityDecl(e *domain.ClientEntity, sealed bool) *codedom.TypeDecl {
	decl := &codedom.TypeDecl{
		Name:      e.Type.Name,
		Namespace: e.Type.Namespace,
		Kind:      codedom.KindClass,
		Partial:   true,
		Sealed:    sealed,
		BaseTypes: []codedom.TypeRef{codedom.Ref(TypeEntity)},
		Attributes: []codedom.Attribute{
			{Type: codedom.Ref(AttrDataContract), Args: []codedom.Literal{
				{Kind: codedom.LitString, Name: "Namespace", Value: dataContractPrefix + e.Type.Namespace},
			}},
		},
		Comment: fmt.Sprintf("The '%s' entity class.", e.Type.FullName()),
	}
	if e.Base != nil {
		decl.BaseTypes = []codedom.TypeRef{codedom.Ref(e.Base.Type.FullName())}
	}
	for _, kt := range e.KnownTypes {
		decl.Attributes = append(decl.Attributes, codedom.Attribute{
			Type: codedom.Ref(AttrKnownType),
			Args: []codedom.Literal{codedom.TypeOf(kt.Type.FullName())},
		})
	}

	decl.Members = append(decl.Members,
		&codedom.Member{Kind: codedom.MemberDefaultConstructor, Name: e.Type.Name},
		hook("OnCreated"),
	)

	for _, p := range e.Properties {
		if p.Shared.IsShared() {
			continue
		}
		if p.Association != nil {
			decl.Members = append(decl.Members, associationMembers(p)...)
			continue
		}
		decl.Members = append(decl.Members, dataMembers(p)...)
	}

	for _, m := range e.CustomMethods {
		if m.Shared.IsShared() {
			continue
		}
		decl.Members = append(decl.Members, customMethodMembers(m)...)
	}

	if e.Base == nil && len(e.Keys) > 0 {
		decl.Members = append(decl.Members, &codedom.Member{
			Kind: codedom.MemberGetIdentity,
			Name: "GetIdentity",
			Type: codedom.Ref("System.Object"),
			Keys: e.Keys,
		})
	}
	return decl
}

func dataMembers(p *domain.ClientProperty) []*codedom.Member {
	typ := codedom.TypeRef{Name: typeName(p.Type), Nullable: p.Nullable, Array: p.Collection}
	field := fieldName(p.Name)

	attrs := []codedom.Attribute{{Type: codedom.Ref(AttrDataMember)}}
	if p.IsKey {
		attrs = append(attrs, codedom.Attribute{Type: codedom.Ref(AttrKey)})
	}
	return []*codedom.Member{
		{Kind: codedom.MemberField, Name: field, Type: typ},
		{
			Kind:       codedom.MemberDataProperty,
			Name:       p.Name,
			Type:       typ,
			Field:      field,
			Attributes: attrs,
			Comment:    fmt.Sprintf("Gets or sets the '%s' value.", p.Name),
		},
		hook("On"+p.Name+"Changing", codedom.Param{Name: "value", Type: typ}),
		hook("On" + p.Name + "Changed"),
	}
}

func associationMembers(p *domain.ClientProperty) []*codedom.Member {
	a := p.Association
	target := codedom.Ref(a.Target)
	fieldType := codedom.Ref(TypeEntityRef, target)
	propType := target
	if a.Collection {
		fieldType = codedom.Ref(TypeEntityCollection, target)
		propType = fieldType
	}
	field := fieldName(p.Name)

	attrs := []codedom.Attribute{{
		Type: codedom.Ref(AttrAssociation),
		Args: []codedom.Literal{
			codedom.Str(a.Name),
			codedom.Str(strings.Join(a.ThisKey, ",")),
			codedom.Str(strings.Join(a.OtherKey, ",")),
		},
	}}
	if a.IsComposition {
		attrs = append(attrs, codedom.Attribute{Type: codedom.Ref(AttrComposition)})
	}
	return []*codedom.Member{
		{Kind: codedom.MemberField, Name: field, Type: fieldType},
		{
			Kind:       codedom.MemberAssociation,
			Name:       p.Name,
			Type:       propType,
			Field:      field,
			Target:     a.Target,
			ThisKey:    a.ThisKey,
			OtherKey:   a.OtherKey,
			Collection: a.Collection,
			Attributes: attrs,
			Comment:    fmt.Sprintf("Gets the associated '%s' entities.", a.Target),
		},
	}
}

func customMethodMembers(m *domain.ClientMethod) []*codedom.Member {
	params := parameters(m.Parameters)
	canName := "Can" + m.Name
	invokedName := "Is" + m.Name + "Invoked"
	return []*codedom.Member{
		{
			Kind:       codedom.MemberCustomMethod,
			Name:       m.Name,
			Parameters: params,
			Target:     m.Name,
			Attributes: []codedom.Attribute{{
				Type: codedom.Ref(AttrEntityAction),
				Args: []codedom.Literal{
					codedom.Str(m.Name),
					{Kind: codedom.LitString, Name: "CanInvokePropertyName", Value: canName},
					{Kind: codedom.LitString, Name: "IsInvokedPropertyName", Value: invokedName},
				},
			}},
			Comment: fmt.Sprintf("Invokes the '%s' action on this entity.", m.Name),
		},
		{Kind: codedom.MemberGuard, Name: canName, Type: codedom.Ref("System.Boolean"), Target: m.Name},
		{Kind: codedom.MemberInvoked, Name: invokedName, Type: codedom.Ref("System.Boolean"), Target: m.Name},
		hook("On"+m.Name+"Invoking", params...),
		hook("On" + m.Name + "Invoked"),
	}
}

func enumDecl(t *domain.Type) *codedom.TypeDecl {
	decl := &codedom.TypeDecl{
		Name:      t.Name,
		Namespace: t.Namespace,
		Kind:      codedom.KindEnum,
		Attributes: []codedom.Attribute{
			{Type: codedom.Ref(AttrDataContract), Args: []codedom.Literal{
				{Kind: codedom.LitString, Name: "Namespace", Value: dataContractPrefix + t.Namespace},
			}},
		},
	}
	for _, v := range t.Values {
		decl.EnumValues = append(decl.EnumValues, codedom.EnumMember{Name: v.Name, Value: v.Value})
	}
	return decl
}

func contextDecl(ctx *domain.ClientContext) *codedom.TypeDecl {
	svc := ctx.Description
	decl := &codedom.TypeDecl{
		Name:      ctx.Name,
		Namespace: ctx.Namespace,
		Kind:      codedom.KindClass,
		Partial:   true,
		Sealed:    true,
		BaseTypes: []codedom.TypeRef{codedom.Ref(TypeDomainContext)},
		Attributes: []codedom.Attribute{{
			Type: codedom.Ref(AttrDomainIdentifier),
			Args: []codedom.Literal{codedom.Str(svc.Name())},
		}},
		Comment: fmt.Sprintf("The domain context corresponding to the '%s' domain service.", svc.Name()),
	}

	decl.Members = append(decl.Members,
		&codedom.Member{Kind: codedom.MemberDefaultConstructor, Name: ctx.Name, Target: serviceAddress(svc)},
		&codedom.Member{
			Kind:       codedom.MemberContextConstructor,
			Name:       ctx.Name,
			Parameters: []codedom.Param{{Name: "serviceUri", Type: codedom.Ref("System.Uri")}},
		},
		hook("OnCreated"),
	)

	for _, e := range ctx.EntitySets {
		decl.Members = append(decl.Members, &codedom.Member{
			Kind:    codedom.MemberEntitySet,
			Name:    shaping.Pluralize(e.Type.Name),
			Type:    codedom.Ref(TypeEntitySet, codedom.Ref(e.Type.FullName())),
			Target:  setOperations(e),
			Comment: fmt.Sprintf("Gets the set of '%s' entity instances loaded into this context.", e.Type.Name),
		})
	}

	for _, op := range ctx.Queries {
		decl.Members = append(decl.Members, &codedom.Member{
			Kind:         codedom.MemberQueryFactory,
			Name:         op.Name + "Query",
			Type:         codedom.Ref(TypeEntityQuery, codedom.Ref(op.Entity.FullName())),
			Parameters:   parameters(op.Parameters),
			Target:       op.Name,
			IsComposable: op.IsComposable,
			Comment:      fmt.Sprintf("Gets a query for the '%s' operation.", op.Name),
		})
	}

	for _, op := range ctx.Custom {
		params := append([]codedom.Param{{Name: lowerFirst(op.Entity.Name), Type: codedom.Ref(op.Entity.FullName())}},
			parameters(op.Parameters)...)
		decl.Members = append(decl.Members, &codedom.Member{
			Kind:       codedom.MemberContextCustom,
			Name:       op.Name,
			Parameters: params,
			Target:     op.Name,
		})
	}

	for _, op := range ctx.Invokes {
		typ := codedom.Ref(TypeInvokeOperation)
		if op.ReturnType != "" && op.ReturnType != domain.TypeVoid {
			ret := codedom.TypeRef{Name: typeName(op.ReturnType), Array: op.ReturnsCollection}
			typ = codedom.Ref(TypeInvokeOperation, ret)
		}
		decl.Members = append(decl.Members, &codedom.Member{
			Kind:           codedom.MemberInvokeOperation,
			Name:           op.Name,
			Type:           typ,
			Parameters:     parameters(op.Parameters),
			Target:         op.Name,
			HasSideEffects: op.HasSideEffects,
			Comment:        fmt.Sprintf("Invokes the '%s' method of the domain service.", op.Name),
		})
	}
	return decl
}

// serviceAddress is the relative address a domain service is published at.
func serviceAddress(svc *domain.DomainServiceDescription) string {
	return strings.ReplaceAll(svc.FullName(), ".", "-") + ".svc"
}

func setOperations(e *domain.ClientEntity) string {
	var ops []string
	if e.CanInsert {
		ops = append(ops, "Add")
	}
	if e.CanUpdate || len(e.CustomMethods) > 0 {
		ops = append(ops, "Edit")
	}
	if e.CanDelete {
		ops = append(ops, "Remove")
	}
	if len(ops) == 0 {
		return "None"
	}
	return strings.Join(ops, ", ")
}

func parameters(params []domain.Parameter) []codedom.Param {
	out := make([]codedom.Param, len(params))
	for i, p := range params {
		out[i] = codedom.Param{
			Name: p.Name,
			Type: codedom.TypeRef{Name: typeName(p.Type), Nullable: p.Nullable, Array: p.Collection},
		}
	}
	return out
}

func hook(name string, params ...codedom.Param) *codedom.Member {
	return &codedom.Member{Kind: codedom.MemberPartialHook, Name: name, Parameters: params}
}

func typeName(aqn string) string {
	name, _ := domain.ParseQualifiedName(aqn)
	return name
}

func fieldName(name string) string {
	return "_" + lowerFirst(name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
