package vb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/emit/vb"
	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
)

func fixtureUnit(namespace string) *codedom.CompileUnit {
	intRef := codedom.Ref("System.Int32")
	top := &codedom.TypeDecl{
		Name:      "Top",
		Namespace: namespace,
		Partial:   true,
		Sealed:    true,
		BaseTypes: []codedom.TypeRef{codedom.Ref("OpenRiaServices.Client.Entity")},
		Attributes: []codedom.Attribute{{
			Type: codedom.Ref("System.Runtime.Serialization.KnownTypeAttribute"),
			Args: []codedom.Literal{codedom.TypeOf(namespace + ".Child")},
		}},
		Members: []*codedom.Member{
			{Kind: codedom.MemberField, Name: "_id", Type: intRef},
			{Kind: codedom.MemberDataProperty, Name: "ID", Type: intRef, Field: "_id"},
			{Kind: codedom.MemberPartialHook, Name: "OnIDChanged"},
			{Kind: codedom.MemberField, Name: "_children", Type: codedom.Ref("OpenRiaServices.Client.EntityCollection", codedom.Ref(namespace+".Child"))},
			{
				Kind: codedom.MemberAssociation, Name: "Children", Field: "_children", Collection: true,
				Type:   codedom.Ref("OpenRiaServices.Client.EntityCollection", codedom.Ref(namespace+".Child")),
				Target: namespace + ".Child", ThisKey: []string{"ID"}, OtherKey: []string{"TopID"},
			},
			{Kind: codedom.MemberGuard, Name: "CanApprove", Type: codedom.Ref("System.Boolean"), Target: "Approve"},
		},
	}
	unit := &codedom.CompileUnit{}
	ns := unit.Namespace(namespace)
	ns.Types = append(ns.Types, top)
	return unit
}

func TestEmit_EmptyUnit(t *testing.T) {
	code, err := vb.New().Emit(&codedom.CompileUnit{}, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Contains(t, code, "<auto-generated>")
	assert.Contains(t, code, "Option Strict On")
	assert.NotContains(t, code, "Class")
}

func TestEmit_Entity(t *testing.T) {
	code, err := vb.New().Emit(fixtureUnit("Sample.Models"), domain.GenerationOptions{ClientRootNamespace: "Sample"})
	require.NoError(t, err)

	for _, want := range []string{
		"Imports OpenRiaServices.Client",
		"Namespace Models\n",
		"<KnownType(GetType(Child))> _",
		"Partial Public NotInheritable Class Top",
		"Inherits Entity",
		"Private _id As Integer",
		"Partial Private Sub OnIDChanged()",
		"Public Property ID() As Integer",
		"If (Object.Equals(Me._id, value) = false) Then",
		"Public ReadOnly Property Children() As EntityCollection(Of Child)",
		`Me._children = New EntityCollection(Of Child)(Me, "Children", AddressOf Me.FilterChildren)`,
		"Return (entity.TopID = Me.ID)",
		`Return MyBase.CanInvokeAction("Approve")`,
		"End Namespace",
	} {
		assert.Contains(t, code, want)
	}
}

func TestEmit_RootNamespaceOnly(t *testing.T) {
	code, err := vb.New().Emit(fixtureUnit("Sample"), domain.GenerationOptions{ClientRootNamespace: "sample"})
	require.NoError(t, err)
	assert.NotContains(t, code, "Namespace Sample")
	assert.NotContains(t, code, "End Namespace")
}

func TestEmit_FullTypeNames(t *testing.T) {
	code, err := vb.New().Emit(fixtureUnit("Sample"), domain.GenerationOptions{UseFullTypeNames: true})
	require.NoError(t, err)
	assert.NotContains(t, code, "Imports ")
	assert.Contains(t, code, "Inherits Global.OpenRiaServices.Client.Entity")
	assert.Contains(t, code, "Namespace Sample")
}

func TestStripRootNamespace(t *testing.T) {
	tests := []struct {
		ns, root, want string
	}{
		{"Sample.Models", "Sample", "Models"},
		{"Sample", "Sample", ""},
		{"sample.models", "Sample", "models"},
		{"SampleX.Models", "Sample", "SampleX.Models"},
		{"Other", "Sample", "Other"},
		{"Sample", "", "Sample"},
	}
	for _, tt := range tests {
		t.Run(tt.ns+"|"+tt.root, func(t *testing.T) {
			assert.Equal(t, tt.want, vb.StripRootNamespace(tt.ns, tt.root))
		})
	}
}

func TestEscapeIdentifier(t *testing.T) {
	e := vb.New()
	assert.Equal(t, "[Property]", e.EscapeIdentifier("Property"))
	assert.Equal(t, "[end]", e.EscapeIdentifier("end"))
	assert.Equal(t, "Name", e.EscapeIdentifier("Name"))
	assert.Equal(t, ".vb", e.FileExtension())
	assert.Equal(t, domain.LanguageVisualBasic, e.Language())
}
