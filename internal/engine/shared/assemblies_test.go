package shared_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/logger"
	"go.trai.ch/riagen/internal/adapters/metadata"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports/mocks"
	"go.trai.ch/riagen/internal/engine/shared"
	"go.uber.org/mock/gomock"
)

func writeAssembly(t *testing.T, dir string, asm *domain.Assembly) string {
	t.Helper()
	path := filepath.Join(dir, asm.Name+metadata.FileSuffix)
	var buf bytes.Buffer
	require.NoError(t, metadata.Encode(&buf, asm))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func fixtureAssemblies(t *testing.T) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	paths = []string{
		writeAssembly(t, dir, &domain.Assembly{Name: "mscorlib", Types: []*domain.Type{
			{Namespace: "System", Name: "String"},
			{Namespace: "System", Name: "Int32", Kind: domain.KindStruct},
		}}),
		writeAssembly(t, dir, &domain.Assembly{Name: "System", Types: []*domain.Type{
			{Namespace: "System", Name: "Uri"},
		}}),
		writeAssembly(t, dir, &domain.Assembly{Name: "System.Core", Types: []*domain.Type{
			{Namespace: "System.Linq", Name: "Enumerable"},
		}}),
		writeAssembly(t, dir, &domain.Assembly{Name: "OpenRiaServices.Server", Types: []*domain.Type{
			{Namespace: "OpenRiaServices.Server", Name: "DomainService"},
			{Namespace: "OpenRiaServices.Server", Name: "EnableClientAccessAttribute"},
		}}),
		writeAssembly(t, dir, &domain.Assembly{Name: "Sample.Shared", Types: []*domain.Type{
			{
				Namespace: "Sample",
				Name:      "Money",
				Kind:      domain.KindStruct,
				Properties: []*domain.Property{
					{Name: "Amount", Type: "System.Decimal"},
				},
				Methods: []*domain.Method{
					{Name: "Convert", ReturnType: "Sample.Money", Parameters: []domain.Parameter{
						{Name: "currency", Type: "System.String"},
						{Name: "rate", Type: "System.Decimal, mscorlib"},
					}},
				},
			},
			{Namespace: "Sample", Name: "SharedService", BaseType: domain.DomainServiceBaseType},
		}}),
	}
	return dir, paths
}

func TestAssemblies_SharedType(t *testing.T) {
	_, paths := fixtureAssemblies(t)
	log := logger.NewPassLog(nil)
	sa := shared.NewAssemblies(paths, nil, metadata.NewReader(), log)

	tests := []struct {
		aqn    string
		shared bool
	}{
		{"System.String, mscorlib, Version=4.0.0.0", true},
		{"System.String, System.Private.CoreLib", true},
		{"System.Uri, System", true},
		{"System.Linq.Enumerable, System.Core", true},
		{"OpenRiaServices.Server.EnableClientAccessAttribute, OpenRiaServices.Server", true},
		{"Sample.Money, Sample.Server", true},
		{"system.string", true},
		{"Tests.OnlyInTests, Tests", false},
		{"System.Console, mscorlib", false},
		{"OpenRiaServices.Server.DomainService, OpenRiaServices.Server", true},
		{"Sample.SharedService, Sample.Shared", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.aqn, func(t *testing.T) {
			got := sa.SharedType(tt.aqn)
			if tt.shared {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
	assert.Empty(t, log.Diagnostics())
}

func TestAssemblies_SystemSearchPaths(t *testing.T) {
	sdk := t.TempDir()
	writeAssembly(t, sdk, &domain.Assembly{Name: "netstandard", Types: []*domain.Type{{Namespace: "System", Name: "Guid", Kind: domain.KindStruct}}})
	require.NoError(t, os.WriteFile(filepath.Join(sdk, "README.txt"), []byte("not metadata"), 0o600))

	sa := shared.NewAssemblies(nil, []string{sdk}, metadata.NewReader(), logger.NewPassLog(nil))

	assert.NotNil(t, sa.SharedType("System.Guid, mscorlib"))
	assert.Nil(t, sa.SharedType("System.Guid, Sample.Server"))
}

func TestAssemblies_SharedMethod(t *testing.T) {
	_, paths := fixtureAssemblies(t)
	sa := shared.NewAssemblies(paths, nil, metadata.NewReader(), logger.NewPassLog(nil))

	m := sa.SharedMethod("Sample.Money, Sample.Server", "Convert", []string{"SYSTEM.STRING, mscorlib", "System.Decimal"})
	require.NotNil(t, m)
	assert.Equal(t, "Convert", m.Name)

	assert.Nil(t, sa.SharedMethod("Sample.Money", "Convert", []string{"System.String"}))
	assert.Nil(t, sa.SharedMethod("Sample.Money", "Convert", []string{"System.Int32", "System.Decimal"}))
	assert.Nil(t, sa.SharedMethod("Sample.Missing", "Convert", nil))

	assert.NotNil(t, sa.SharedProperty("Sample.Money", "Amount"))
	assert.Nil(t, sa.SharedProperty("Sample.Money", "Currency"))
}

func TestAssemblies_MemberLookupsIgnoreQueryOrder(t *testing.T) {
	_, paths := fixtureAssemblies(t)
	sa := shared.NewAssemblies(paths, nil, metadata.NewReader(), logger.NewPassLog(nil))

	assert.Nil(t, sa.SharedMethod("Sample.Money", "convert", []string{"System.String", "System.Decimal"}))
	assert.NotNil(t, sa.SharedMethod("sample.money", "Convert", []string{"system.string", "System.Decimal"}),
		"a miss for one member spelling is not reused for another")

	assert.Nil(t, sa.SharedProperty("Sample.Money", "amount"))
	assert.NotNil(t, sa.SharedProperty("SAMPLE.MONEY", "Amount"))
	assert.Nil(t, sa.SharedProperty("Sample.Money", "amount"))
}

func TestAssemblies_LoadFailuresAreInformational(t *testing.T) {
	dir, paths := fixtureAssemblies(t)
	missing := filepath.Join(dir, "Missing.meta.yaml")
	bad := filepath.Join(dir, "Bad.meta.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("MZ\x90\x00\x03 this is not metadata: ["), 0o600))

	log := logger.NewPassLog(nil)
	sa := shared.NewAssemblies(append([]string{missing, bad}, paths...), nil, metadata.NewReader(), log)

	assert.NotPanics(t, func() {
		assert.Nil(t, sa.SharedType("Tests.Nothing, Tests"))
		assert.Nil(t, sa.SharedMethod("Tests.Nothing, Tests", "Run", nil))
	})
	assert.NotNil(t, sa.SharedType("Sample.Money, Sample.Shared"), "other candidates are still scanned")

	assert.False(t, log.HasLoggedErrors())
	messages := log.Messages(domain.SeverityMessage)
	require.Len(t, messages, 2, "each failing assembly is reported once")
	assert.Contains(t, messages[0], missing)
	assert.Contains(t, messages[0], "failed to load assembly metadata")
	assert.Contains(t, messages[1], bad)
}

func TestAssemblies_LoadsOncePerPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockMetadataReader(ctrl)
	reader.EXPECT().ReadAssembly("/bin/Client.meta.yaml").Return(&domain.Assembly{
		Name:  "Client",
		Types: []*domain.Type{{Namespace: "Sample", Name: "Top"}},
	}, nil).Times(1)

	sa := shared.NewAssemblies([]string{"/bin/Client.meta.yaml"}, nil, reader, logger.NewPassLog(nil))

	first := sa.SharedType("Sample.Top, Client")
	second := sa.SharedType("SAMPLE.TOP, CLIENT")
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Nil(t, sa.SharedType("Sample.Other"))
}

func TestIntersect(t *testing.T) {
	got := shared.Intersect(
		[]string{"/c/App.cs", "/s/Top.shared.cs", "/S/TOP.shared.cs"},
		[]string{"/s/top.SHARED.cs", "/s/Server.cs"},
	)
	assert.Equal(t, []string{"/s/Top.shared.cs"}, got)
	assert.True(t, strings.HasSuffix(got[0], "Top.shared.cs"))
}
