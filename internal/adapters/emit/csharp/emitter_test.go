package csharp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/emit/csharp"
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
)

func fixtureUnit() *codedom.CompileUnit {
	intRef := codedom.Ref("System.Int32")
	top := &codedom.TypeDecl{
		Name:      "Top",
		Namespace: "Sample",
		Partial:   true,
		Sealed:    true,
		BaseTypes: []codedom.TypeRef{codedom.Ref("OpenRiaServices.Client.Entity")},
		Attributes: []codedom.Attribute{{
			Type: codedom.Ref("System.Runtime.Serialization.DataContractAttribute"),
			Args: []codedom.Literal{{Kind: codedom.LitString, Name: "Namespace", Value: "http://schemas.datacontract.org/2004/07/Sample"}},
		}},
		Comment: "The 'Sample.Top' entity class.",
		Members: []*codedom.Member{
			{Kind: codedom.MemberDefaultConstructor, Name: "Top"},
			{Kind: codedom.MemberPartialHook, Name: "OnCreated"},
			{Kind: codedom.MemberField, Name: "_id", Type: intRef},
			{
				Kind: codedom.MemberDataProperty, Name: "ID", Type: intRef, Field: "_id",
				Attributes: []codedom.Attribute{
					{Type: codedom.Ref("System.Runtime.Serialization.DataMemberAttribute")},
					{Type: codedom.Ref("System.ComponentModel.DataAnnotations.KeyAttribute")},
				},
			},
			{Kind: codedom.MemberPartialHook, Name: "OnIDChanging", Parameters: []codedom.Param{{Name: "value", Type: intRef}}},
			{Kind: codedom.MemberField, Name: "_rank", Type: codedom.TypeRef{Name: "System.Int32", Nullable: true}},
			{Kind: codedom.MemberGetIdentity, Name: "GetIdentity", Type: codedom.Ref("System.Object"), Keys: []string{"ID"}},
		},
	}
	ctx := &codedom.TypeDecl{
		Name:      "TopContext",
		Namespace: "Sample",
		Partial:   true,
		Sealed:    true,
		BaseTypes: []codedom.TypeRef{codedom.Ref("OpenRiaServices.Client.DomainContext")},
		Members: []*codedom.Member{
			{Kind: codedom.MemberDefaultConstructor, Name: "TopContext", Target: "Sample-TopService.svc"},
			{
				Kind: codedom.MemberEntitySet, Name: "Tops", Target: "Add, Edit",
				Type: codedom.Ref("OpenRiaServices.Client.EntitySet", codedom.Ref("Sample.Top")),
			},
			{
				Kind: codedom.MemberQueryFactory, Name: "GetTopsQuery", Target: "GetTops", IsComposable: true,
				Type: codedom.Ref("OpenRiaServices.Client.EntityQuery", codedom.Ref("Sample.Top")),
			},
			{
				Kind: codedom.MemberInvokeOperation, Name: "Ping", Target: "Ping", HasSideEffects: true,
				Type:       codedom.Ref("OpenRiaServices.Client.InvokeOperation", intRef),
				Parameters: []codedom.Param{{Name: "event", Type: codedom.Ref("System.String")}},
			},
		},
	}
	unit := &codedom.CompileUnit{}
	ns := unit.Namespace("Sample")
	ns.Types = append(ns.Types, top, ctx)
	return unit
}

func TestEmit_EmptyUnit(t *testing.T) {
	code, err := csharp.New().Emit(&codedom.CompileUnit{}, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Contains(t, code, "<auto-generated>")
	assert.NotContains(t, code, "class")
}

func TestEmit_ShortNames(t *testing.T) {
	code, err := csharp.New().Emit(fixtureUnit(), domain.GenerationOptions{})
	require.NoError(t, err)

	for _, want := range []string{
		"namespace Sample\n{",
		"    using System;",
		"    using OpenRiaServices.Client;",
		"    using System.Runtime.Serialization;",
		"/// The 'Sample.Top' entity class.",
		`[DataContract(Namespace="http://schemas.datacontract.org/2004/07/Sample")]`,
		"[DataMember()]",
		"[Key()]",
		"public sealed partial class Top : Entity",
		"private int _id;",
		"private int? _rank;",
		"partial void OnIDChanging(int value);",
		"this.OnCreated();",
		"public int ID",
		`this.RaiseDataMemberChanging("ID");`,
		"public override object GetIdentity()",
		"return this.ID;",
		`this(new Uri("Sample-TopService.svc", UriKind.Relative))`,
		"return base.EntityContainer.GetEntitySet<Top>();",
		"this.CreateEntitySet<Top>(EntitySetOperations.Add | EntitySetOperations.Edit);",
		`return base.CreateQuery<Top>("GetTops", null, false, true);`,
		"public InvokeOperation<int> Ping(string @event)",
		`parameters.Add("event", @event);`,
		`return this.InvokeOperation<int>("Ping", typeof(int), parameters, true, null, null);`,
	} {
		assert.Contains(t, code, want)
	}
	assert.Less(t, strings.Index(code, "using System;"), strings.Index(code, "using OpenRiaServices.Client;"))
}

func TestEmit_FullTypeNames(t *testing.T) {
	code, err := csharp.New().Emit(fixtureUnit(), domain.GenerationOptions{UseFullTypeNames: true})
	require.NoError(t, err)

	assert.NotContains(t, code, "using ")
	assert.Contains(t, code, "public sealed partial class Top : global::OpenRiaServices.Client.Entity")
	assert.Contains(t, code, "[global::System.Runtime.Serialization.DataContractAttribute(")
	assert.Contains(t, code, "private int _id;", "keyword aliases are kept")
}

func TestEmit_AmbiguousShortNamesAreQualified(t *testing.T) {
	unit := fixtureUnit()
	ns := unit.Namespace("Sample")
	ns.Types = append(ns.Types, &codedom.TypeDecl{Name: "Entity", Namespace: "Sample", Partial: true})

	code, err := csharp.New().Emit(unit, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Contains(t, code, "public sealed partial class Top : global::OpenRiaServices.Client.Entity")
	assert.Contains(t, code, "public partial class Entity")
}

func TestEmit_UnsupportedMember(t *testing.T) {
	unit := &codedom.CompileUnit{}
	ns := unit.Namespace("Sample")
	ns.Types = append(ns.Types, &codedom.TypeDecl{
		Name: "Broken", Namespace: "Sample",
		Members: []*codedom.Member{{Kind: codedom.MemberKind(99), Name: "Nope"}},
	})

	_, err := csharp.New().Emit(unit, domain.GenerationOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestEmit_Enum(t *testing.T) {
	unit := &codedom.CompileUnit{}
	ns := unit.Namespace("Sample")
	ns.Types = append(ns.Types, &codedom.TypeDecl{
		Name: "Color", Namespace: "Sample", Kind: codedom.KindEnum,
		EnumValues: []codedom.EnumMember{{Name: "Red", Value: 1}, {Name: "Green", Value: 2}},
	})

	code, err := csharp.New().Emit(unit, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Contains(t, code, "public enum Color\n    {\n        Red = 1,\n\n        Green = 2,\n    }")
}

func TestEscapeIdentifier(t *testing.T) {
	e := csharp.New()
	assert.Equal(t, "@class", e.EscapeIdentifier("class"))
	assert.Equal(t, "Class", e.EscapeIdentifier("Class"))
	assert.Equal(t, "name", e.EscapeIdentifier("name"))
	assert.Equal(t, ".cs", e.FileExtension())
	assert.Equal(t, domain.LanguageCSharp, e.Language())
}
