package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/logger"
	"go.trai.ch/riagen/internal/adapters/metadata"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/engine/shared"
)

func TestCodeService(t *testing.T) {
	_, paths := fixtureAssemblies(t)
	top := &domain.Type{
		Assembly:    "Sample.Server",
		Namespace:   "Sample",
		Name:        "Top",
		SourceFiles: []string{"/server/Top.shared.cs", "/server/Top.cs"},
		Properties: []*domain.Property{
			{Name: "ID", Type: "System.Int32", SourceFile: "/server/Top.cs"},
			{Name: "Label", Type: "System.String", SourceFile: "/server/Top.shared.cs"},
		},
		Methods: []*domain.Method{
			{Name: "Describe", ReturnType: "System.String", SourceFile: "/server/Top.shared.cs"},
		},
	}
	hidden := &domain.Type{Assembly: "Sample.Server", Namespace: "Sample", Name: "Hidden", SourceFiles: []string{"/server/Hidden.cs"}}
	table, err := domain.NewTypeTable(&domain.Assembly{Name: "Sample.Server", Types: []*domain.Type{top, hidden}})
	require.NoError(t, err)

	svc := shared.NewCodeService(
		table,
		shared.NewAssemblies(paths, nil, metadata.NewReader(), logger.NewPassLog(nil)),
		shared.NewSourceFiles([]string{"/SERVER/top.shared.cs"}),
	)

	assert.Equal(t, domain.SharedBySource, svc.TypeShareKind("Sample.Top, Sample.Server"))
	assert.Equal(t, domain.ShareNone, svc.TypeShareKind("Sample.Hidden, Sample.Server"))
	assert.Equal(t, domain.SharedByReference, svc.TypeShareKind("Sample.Money, Sample.Server"))
	assert.Equal(t, domain.SharedByReference, svc.TypeShareKind("System.String, mscorlib"))
	assert.Equal(t, domain.ShareUnknown, svc.TypeShareKind(""))

	assert.Equal(t, domain.SharedBySource, svc.PropertyShareKind("Sample.Top", "Label"))
	assert.Equal(t, domain.ShareNone, svc.PropertyShareKind("Sample.Top", "ID"))
	assert.Equal(t, domain.SharedByReference, svc.PropertyShareKind("sample.money", "Amount"))

	assert.Equal(t, domain.SharedBySource, svc.MethodShareKind("Sample.Top", "Describe", nil))
	assert.Equal(t, domain.ShareNone, svc.MethodShareKind("Sample.Top", "Describe", []string{"System.Int32"}))
	assert.Equal(t, domain.SharedByReference,
		svc.MethodShareKind("Sample.Money", "Convert", []string{"System.String", "System.Decimal"}))

	// Member names keep their case whatever was asked before.
	assert.Equal(t, domain.ShareNone, svc.PropertyShareKind("Sample.Money", "amount"))
	assert.Equal(t, domain.SharedByReference, svc.PropertyShareKind("Sample.Money", "Amount"))
	assert.Equal(t, domain.ShareNone, svc.MethodShareKind("Sample.Money", "convert", []string{"System.String", "System.Decimal"}))
	assert.Equal(t, domain.SharedByReference, svc.MethodShareKind("SAMPLE.MONEY", "Convert", []string{"system.string", "system.decimal"}))

	// Repeated queries are stable.
	assert.Equal(t, svc.TypeShareKind("SAMPLE.TOP, SAMPLE.SERVER"), svc.TypeShareKind("Sample.Top, Sample.Server"))
}
