package shaping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/logger"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/core/ports/mocks"
	"go.trai.ch/riagen/internal/engine/catalog"
	"go.trai.ch/riagen/internal/engine/shaping"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func attr(name string, args ...string) domain.Attribute {
	return domain.Attribute{Name: name, Args: args}
}

func key(name string) *domain.Property {
	return &domain.Property{Name: name, Type: "System.Int32", Attributes: domain.Attributes{attr(domain.AttrKey)}}
}

func scalar(name, typ string, attrs ...domain.Attribute) *domain.Property {
	return &domain.Property{Name: name, Type: typ, Attributes: attrs}
}

func nav(name, target, thisKey, otherKey string, attrs ...domain.Attribute) *domain.Property {
	return &domain.Property{
		Name:       name,
		Type:       target,
		Collection: true,
		Attributes: append(domain.Attributes{attr(domain.AttrAssociation, name+"_Assoc", thisKey, otherKey)}, attrs...),
	}
}

func entity(name string, props ...*domain.Property) *domain.Type {
	return &domain.Type{Assembly: "Sample.Server", Namespace: "Sample", Name: name, Kind: domain.KindClass, Properties: props}
}

func query(name, entity string) *domain.Method {
	return &domain.Method{Name: name, ReturnType: entity, Collection: true}
}

func custom(name, entity string, params ...domain.Parameter) *domain.Method {
	return &domain.Method{
		Name:       name,
		Parameters: append([]domain.Parameter{{Name: "target", Type: entity}}, params...),
		Attributes: domain.Attributes{attr(domain.AttrEntityAction)},
	}
}

func service(name string, attrs domain.Attributes, methods ...*domain.Method) *domain.Type {
	return &domain.Type{
		Assembly:   "Sample.Server",
		Namespace:  "Sample",
		Name:       name,
		Kind:       domain.KindClass,
		BaseType:   domain.DomainServiceBaseType,
		Attributes: append(domain.Attributes{attr(domain.AttrEnableClientAccess)}, attrs...),
		Methods:    methods,
	}
}

// notShared classifies everything as generated.
func notShared(t *testing.T) *mocks.MockSharedCodeService {
	t.Helper()
	ctrl := gomock.NewController(t)
	share := mocks.NewMockSharedCodeService(ctrl)
	share.EXPECT().TypeShareKind(gomock.Any()).Return(domain.ShareNone).AnyTimes()
	share.EXPECT().PropertyShareKind(gomock.Any(), gomock.Any()).Return(domain.ShareNone).AnyTimes()
	share.EXPECT().MethodShareKind(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ShareNone).AnyTimes()
	return share
}

type pass struct {
	model *domain.ClientModel
	log   *logger.PassLog
}

func shape(t *testing.T, share *mocks.MockSharedCodeService, types []*domain.Type, services ...*domain.Type) pass {
	t.Helper()
	table, err := domain.NewTypeTable(&domain.Assembly{Name: "Sample.Server", Types: append(types, services...)})
	require.NoError(t, err)

	log := logger.NewPassLog(nil)
	descs := catalog.New(services, table, log).DomainServiceDescriptions()
	require.False(t, log.HasLoggedErrors(), "catalog: %v", log.Messages(domain.SeverityError))

	return pass{model: shaping.Build(descs, table, share, log), log: log}
}

func propertyNames(e *domain.ClientEntity) []string {
	var out []string
	for _, p := range e.Properties {
		out = append(out, p.Name)
	}
	return out
}

func entityNames(es []*domain.ClientEntity) []string {
	var out []string
	for _, e := range es {
		out = append(out, e.Type.Name)
	}
	return out
}

func topScenario() []*domain.Type {
	leaf := func(name string) *domain.Type {
		return entity(name, key("ID"), scalar("TopID", "System.Int32"))
	}
	return []*domain.Type{
		entity("Top",
			key("ID"),
			nav("A", "Sample.A", "ID", "TopID"),
			nav("B", "Sample.B", "ID", "TopID"),
			nav("C", "Sample.C", "ID", "TopID"),
			nav("D", "Sample.D", "ID", "TopID"),
		),
		leaf("A"), leaf("B"), leaf("C"), leaf("D"),
	}
}

func TestBuild_SharedEntityUnion(t *testing.T) {
	one := service("OneService", nil, query("GetTops", "Sample.Top"), query("GetAs", "Sample.A"), query("GetBs", "Sample.B"))
	two := service("TwoService", nil, query("GetTops", "Sample.Top"), query("GetBs", "Sample.B"), query("GetCs", "Sample.C"))

	p := shape(t, notShared(t), topScenario(), one, two)

	require.False(t, p.log.HasLoggedErrors())
	assert.Equal(t, []string{"Top", "A", "B", "C"}, entityNames(p.model.Entities))

	top := p.model.Entity("Sample.Top")
	require.NotNil(t, top)
	assert.Equal(t, []string{"ID", "A", "B", "C"}, propertyNames(top), "D is never reached by a query")
	assert.Len(t, top.Services, 2)
	assert.Same(t, p.model.Entity("Sample.B"), top.Property("B").Target)

	require.Len(t, p.model.Services, 2)
	assert.Equal(t, "OneContext", p.model.Services[0].Name)
	assert.Equal(t, []string{"Top", "A", "B"}, entityNames(p.model.Services[0].EntitySets))
	assert.Equal(t, []string{"Top", "B", "C"}, entityNames(p.model.Services[1].EntitySets))
	assert.Nil(t, p.model.Entity("Sample.D"))
}

func TestBuild_DirectivesApplyToEveryService(t *testing.T) {
	types := []*domain.Type{
		entity("Top",
			key("ID"),
			scalar("Name", "System.String"),
			scalar("Secret", "System.String", attr(domain.AttrInclude)),
			scalar("Note", "System.String"),
		),
	}
	one := service("OneService", domain.Attributes{attr(domain.AttrExcludeMember, "Sample.Top", "Name")}, query("GetTops", "Sample.Top"))
	two := service("TwoService", domain.Attributes{attr(domain.AttrExcludeMember, "Sample.Top", "Secret")}, query("GetTops", "Sample.Top"))
	three := service("ThreeService", nil, query("GetTops", "Sample.Top"))

	for _, order := range [][]*domain.Type{{one, two, three}, {three, two, one}, {two, three, one}} {
		p := shape(t, notShared(t), types, order...)

		top := p.model.Entity("Sample.Top")
		require.NotNil(t, top)
		assert.Equal(t, []string{"ID", "Note"}, propertyNames(top),
			"an exclude seen from any service wins over includes and defaults")
	}
}

func TestBuild_DirectivesComeFromContributors(t *testing.T) {
	types := []*domain.Type{
		entity("Top", key("ID"), scalar("Name", "System.String")),
		entity("Other", key("ID")),
	}
	one := service("OneService", nil, query("GetTops", "Sample.Top"))
	two := service("TwoService", domain.Attributes{attr(domain.AttrExcludeMember, "Sample.Top", "Name")}, query("GetOthers", "Sample.Other"))

	p := shape(t, notShared(t), types, one, two)

	top := p.model.Entity("Sample.Top")
	require.NotNil(t, top)
	assert.Equal(t, []string{"ID", "Name"}, propertyNames(top), "a service that does not expose Top cannot shape it")
}

func TestBuild_IncludeForcesProperty(t *testing.T) {
	types := []*domain.Type{
		entity("Top",
			key("ID"),
			scalar("Home", "Sample.Address", attr(domain.AttrInclude)),
			scalar("Work", "Sample.Address"),
		),
	}

	p := shape(t, notShared(t), types, service("TopService", nil, query("GetTops", "Sample.Top")))

	top := p.model.Entity("Sample.Top")
	require.NotNil(t, top)
	assert.Equal(t, []string{"ID", "Home"}, propertyNames(top), "only the included complex member survives")
}

func TestBuild_IncludeMemberOverlay(t *testing.T) {
	svc := service("TopService", domain.Attributes{attr(domain.AttrIncludeMember, "Sample.Top", "D")}, query("GetTops", "Sample.Top"))

	p := shape(t, notShared(t), topScenario(), svc)

	require.False(t, p.log.HasLoggedErrors())
	top := p.model.Entity("Sample.Top")
	require.NotNil(t, top)
	assert.Equal(t, []string{"ID", "D"}, propertyNames(top))
	require.NotNil(t, p.model.Entity("Sample.D"))
	assert.Same(t, p.model.Entity("Sample.D"), top.Property("D").Target)
	assert.Equal(t, []string{"Top", "D"}, entityNames(p.model.Entities))
}

func TestBuild_SharedEntityMustBeLeastDerived(t *testing.T) {
	types := []*domain.Type{
		entity("X", key("ID")),
		{Assembly: "Sample.Server", Namespace: "Sample", Name: "Z", Kind: domain.KindClass, BaseType: "Sample.X",
			Properties: []*domain.Property{scalar("Extra", "System.String")}},
	}
	a := service("AService", nil, query("GetXs", "Sample.X"))
	b := service("BService", nil, query("GetZs", "Sample.Z"))

	p := shape(t, notShared(t), types, a, b)

	require.True(t, p.log.HasLoggedErrors())
	errs := p.log.Messages(domain.SeverityError)
	require.Len(t, errs, 1)
	for _, name := range []string{"Sample.X", "Sample.AService", "Sample.Z", "Sample.BService", "shared entity must be least derived type"} {
		assert.Contains(t, errs[0], name)
	}
	assert.Nil(t, p.model.Entity("Sample.Z"))
	assert.NotNil(t, p.model.Entity("Sample.X"))
}

func TestBuild_KnownTypeEstablishesLeaf(t *testing.T) {
	x := entity("X", key("ID"))
	x.Attributes = domain.Attributes{attr(domain.AttrKnownType, "Sample.Z")}
	types := []*domain.Type{
		x,
		{Assembly: "Sample.Server", Namespace: "Sample", Name: "Z", Kind: domain.KindClass, BaseType: "Sample.X",
			Properties: []*domain.Property{scalar("Extra", "System.String")}},
	}
	a := service("AService", nil, query("GetXs", "Sample.X"))
	b := service("BService", nil, query("GetZs", "Sample.Z"))

	p := shape(t, notShared(t), types, a, b)

	require.False(t, p.log.HasLoggedErrors(), "%v", p.log.Messages(domain.SeverityError))
	z := p.model.Entity("Sample.Z")
	require.NotNil(t, z)
	assert.Same(t, p.model.Entity("Sample.X"), z.Base)
	assert.Equal(t, []string{"Extra"}, propertyNames(z))
	assert.Equal(t, []string{"X"}, entityNames(p.model.Services[1].EntitySets), "entity sets are declared on the root")
	assert.Equal(t, []string{"Z"}, entityNames(p.model.Entity("Sample.X").KnownTypes))
}

func TestBuild_FlattensHiddenAncestors(t *testing.T) {
	root := entity("Root", key("ID"))
	root.Attributes = domain.Attributes{attr(domain.AttrKnownType, "Sample.Leaf")}
	mid := entity("Mid", scalar("Level", "System.Int32"))
	mid.BaseType = "Sample.Root"
	leaf := entity("Leaf", scalar("Color", "Sample.Color"))
	leaf.BaseType = "Sample.Mid"
	color := &domain.Type{Assembly: "Sample.Server", Namespace: "Sample", Name: "Color", Kind: domain.KindEnum}

	p := shape(t, notShared(t), []*domain.Type{root, mid, leaf, color}, service("TreeService", nil, query("GetRoots", "Sample.Root")))

	require.False(t, p.log.HasLoggedErrors())
	l := p.model.Entity("Sample.Leaf")
	require.NotNil(t, l)
	assert.Equal(t, "Root", l.Base.Type.Name)
	assert.Equal(t, []string{"Level", "Color"}, propertyNames(l))
	assert.Equal(t, "Mid", l.Property("Level").DeclaringType.Name)
	assert.Nil(t, p.model.Entity("Sample.Mid"))

	require.Len(t, p.model.Enums, 1)
	assert.Equal(t, "Sample.Color", p.model.Enums[0].Type.FullName())
}

func TestBuild_CustomMethods(t *testing.T) {
	types := func() []*domain.Type { return []*domain.Type{entity("Top", key("ID"))} }

	t.Run("identical signatures merge", func(t *testing.T) {
		one := service("OneService", nil, query("GetTops", "Sample.Top"),
			custom("Approve", "Sample.Top", domain.Parameter{Name: "note", Type: "System.String"}))
		two := service("TwoService", nil, query("GetTops", "Sample.Top"),
			custom("Approve", "Sample.Top", domain.Parameter{Name: "reason", Type: "System.String"}))

		p := shape(t, notShared(t), types(), one, two)

		require.False(t, p.log.HasLoggedErrors())
		top := p.model.Entity("Sample.Top")
		require.Len(t, top.CustomMethods, 1)
		assert.Equal(t, "Approve", top.CustomMethods[0].Name)
		assert.Len(t, top.CustomMethods[0].Services, 2)
	})

	t.Run("different signatures conflict", func(t *testing.T) {
		one := service("OneService", nil, query("GetTops", "Sample.Top"),
			custom("Approve", "Sample.Top", domain.Parameter{Name: "note", Type: "System.String"}))
		two := service("TwoService", nil, query("GetTops", "Sample.Top"),
			custom("Approve", "Sample.Top", domain.Parameter{Name: "level", Type: "System.Int32"}))

		var captured []error
		table, err := domain.NewTypeTable(&domain.Assembly{Name: "Sample.Server", Types: append(types(), one, two)})
		require.NoError(t, err)
		descs := catalog.New([]*domain.Type{one, two}, table, logger.NewPassLog(nil)).DomainServiceDescriptions()

		model := shaping.Build(descs, table, notShared(t), recorder{&captured})

		require.Len(t, captured, 1)
		require.ErrorIs(t, captured[0], domain.ErrDuplicateCustomMethod)
		assert.Contains(t, captured[0].Error(), "Sample.OneService")
		assert.Contains(t, captured[0].Error(), "Sample.TwoService")

		var zErr *zerr.Error
		require.ErrorAs(t, captured[0], &zErr)
		assert.Equal(t, "Approve", zErr.Metadata()["method"])

		assert.Nil(t, model.Entity("Sample.Top"))
		assert.Empty(t, model.Services[0].EntitySets)
	})
}

func TestBuild_ShareKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	share := mocks.NewMockSharedCodeService(ctrl)
	share.EXPECT().TypeShareKind("Sample.Top, Sample.Server").Return(domain.SharedBySource)
	share.EXPECT().TypeShareKind("Sample.TopContext").Return(domain.SharedByReference)
	share.EXPECT().PropertyShareKind("Sample.Top, Sample.Server", "ID").Return(domain.ShareNone)
	share.EXPECT().PropertyShareKind("Sample.Top, Sample.Server", "Label").Return(domain.SharedBySource)

	p := shape(t, share, []*domain.Type{entity("Top", key("ID"), scalar("Label", "System.String"))},
		service("TopService", nil, query("GetTops", "Sample.Top")))

	top := p.model.Entity("Sample.Top")
	assert.Equal(t, domain.SharedBySource, top.Shared)
	assert.Equal(t, domain.SharedBySource, top.Property("Label").Shared)
	assert.False(t, top.Property("ID").Shared.IsShared())
	assert.Equal(t, domain.SharedByReference, p.model.Services[0].Shared)
}

func TestBuild_CrudFlags(t *testing.T) {
	p := shape(t, notShared(t), []*domain.Type{entity("Top", key("ID"))},
		service("TopService", nil,
			query("GetTops", "Sample.Top"),
			&domain.Method{Name: "InsertTop", Parameters: []domain.Parameter{{Name: "t", Type: "Sample.Top"}}},
			&domain.Method{Name: "DeleteTop", Parameters: []domain.Parameter{{Name: "t", Type: "Sample.Top"}}},
		))

	top := p.model.Entity("Sample.Top")
	assert.True(t, top.CanInsert)
	assert.False(t, top.CanUpdate)
	assert.True(t, top.CanDelete)
}

func TestContextName(t *testing.T) {
	assert.Equal(t, "CatalogContext", shaping.ContextName("CatalogService"))
	assert.Equal(t, "OrdersDomainContext", shaping.ContextName("OrdersDomainService"))
	assert.Equal(t, "ServiceContext", shaping.ContextName("Service"))
	assert.Equal(t, "NorthwindContext", shaping.ContextName("Northwind"))
}

func TestPluralize(t *testing.T) {
	tests := map[string]string{
		"Top":      "Tops",
		"Address":  "Addresses",
		"Box":      "Boxes",
		"Match":    "Matches",
		"Dish":     "Dishes",
		"Category": "Categories",
		"Day":      "Days",
		"":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, shaping.Pluralize(in), in)
	}
}

type recorder struct {
	errs *[]error
}

func (r recorder) Info(string)     {}
func (r recorder) Warn(string)     {}
func (r recorder) Error(err error) { *r.errs = append(*r.errs, err) }

var _ ports.Logger = recorder{}
