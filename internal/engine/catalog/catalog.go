// Package catalog builds domain service descriptions from server metadata.
package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Catalog owns the domain service descriptions of one generation pass.
type Catalog struct {
	services     []*domain.Type
	types        *domain.TypeTable
	log          ports.Logger
	descriptions []*domain.DomainServiceDescription
}

// New creates a catalog over the given domain service types. Descriptions are built on first use.
func New(serviceTypes []*domain.Type, types *domain.TypeTable, log ports.Logger) *Catalog {
	return &Catalog{services: serviceTypes, types: types, log: log}
}

// Discover returns every type that enables client access and derives from the domain service
// base type, sorted by full name.
func Discover(types *domain.TypeTable) []*domain.Type {
	var out []*domain.Type
	for _, t := range types.Types() {
		if t.Attributes.Has(domain.AttrEnableClientAccess) && types.DerivesFrom(t, domain.DomainServiceBaseType) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Type) int {
		return strings.Compare(a.FullName(), b.FullName())
	})
	return out
}

// DomainServiceDescriptions returns one description per service type, in input order.
// Validation errors are logged against the service and the offending part is left out.
func (c *Catalog) DomainServiceDescriptions() []*domain.DomainServiceDescription {
	if c.descriptions == nil {
		c.descriptions = make([]*domain.DomainServiceDescription, 0, len(c.services))
		for _, svc := range c.services {
			b := &builder{types: c.types, log: c.log, service: svc}
			c.descriptions = append(c.descriptions, b.build())
		}
	}
	return c.descriptions
}

type builder struct {
	types   *domain.TypeTable
	log     ports.Logger
	service *domain.Type

	desc    *domain.DomainServiceDescription
	invalid map[string]bool
}

func (b *builder) build() *domain.DomainServiceDescription {
	b.desc = &domain.DomainServiceDescription{
		Type:       b.service,
		Directives: domain.NewShapingDirectives(),
	}
	b.invalid = make(map[string]bool)
	b.collectServiceDirectives()

	var pending []*domain.Operation
	for _, m := range b.serviceMethods() {
		op, ok := b.classify(m)
		if !ok {
			continue
		}
		if op.Kind == domain.OpQuery {
			b.addEntity(op.Entity)
		}
		pending = append(pending, op)
	}

	for _, op := range pending {
		if b.validateOperation(op) {
			b.desc.Operations = append(b.desc.Operations, op)
		}
	}

	b.resolveCodeProcessor()
	return b.desc
}

// serviceMethods returns the methods of the service and its base types declared in the table,
// most derived first. Overridden methods appear once.
func (b *builder) serviceMethods() []*domain.Method {
	var out []*domain.Method
	seen := make(map[string]bool)
	chain := append([]*domain.Type{b.service}, b.types.BaseChain(b.service)...)
	for _, t := range chain {
		if strings.EqualFold(t.FullName(), domain.DomainServiceBaseType) {
			break
		}
		for _, m := range t.Methods {
			key := strings.ToLower(m.Name + "(" + strings.Join(m.ParameterTypes(), ",") + ")")
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

var conventions = []struct {
	kind     domain.OperationKind
	prefixes []string
}{
	{domain.OpInsert, []string{"Insert", "Add", "Create"}},
	{domain.OpUpdate, []string{"Update", "Change", "Modify"}},
	{domain.OpDelete, []string{"Delete", "Remove"}},
}

func (b *builder) classify(m *domain.Method) (*domain.Operation, bool) {
	if m.Attributes.Has(domain.AttrIgnore) {
		return nil, false
	}
	op := &domain.Operation{
		Name:              m.Name,
		Method:            m,
		Parameters:        m.Parameters,
		ReturnType:        m.ReturnType,
		ReturnsCollection: m.Collection,
	}

	switch {
	case m.Attributes.Has(domain.AttrQuery):
		attr, _ := m.Attributes.Find(domain.AttrQuery)
		return b.query(op, m, attr)
	case m.Attributes.Has(domain.AttrEntityAction):
		return b.update(op, m, domain.OpCustom)
	case m.Attributes.Has(domain.AttrUpdate):
		attr, _ := m.Attributes.Find(domain.AttrUpdate)
		if isTrue(attr.NamedArg(domain.ArgUsingCustomMethod)) {
			return b.update(op, m, domain.OpCustom)
		}
		return b.update(op, m, domain.OpUpdate)
	case m.Attributes.Has(domain.AttrInsert):
		return b.update(op, m, domain.OpInsert)
	case m.Attributes.Has(domain.AttrDelete):
		return b.update(op, m, domain.OpDelete)
	case m.Attributes.Has(domain.AttrInvoke):
		attr, _ := m.Attributes.Find(domain.AttrInvoke)
		return b.invoke(op, attr)
	}

	if m.ReturnsVoid() && len(m.Parameters) == 1 && b.entityType(m.Parameters[0]) != nil {
		for _, c := range conventions {
			for _, prefix := range c.prefixes {
				if strings.HasPrefix(m.Name, prefix) {
					return b.update(op, m, c.kind)
				}
			}
		}
	}
	if m.Collection && b.entityType(domain.Parameter{Type: m.ReturnType}) != nil {
		return b.query(op, m, domain.Attribute{})
	}
	return b.invoke(op, domain.Attribute{})
}

func (b *builder) query(op *domain.Operation, m *domain.Method, attr domain.Attribute) (*domain.Operation, bool) {
	entity := b.entityType(domain.Parameter{Type: m.ReturnType})
	if entity == nil {
		b.fail(zerr.With(zerr.Wrap(domain.ErrUnsupportedOperationType,
			fmt.Sprintf("query %s must return an entity type", m.Name)), "type", m.ReturnType))
		return nil, false
	}
	op.Kind = domain.OpQuery
	op.Entity = entity
	op.IsComposable = m.Composable
	if v := attr.NamedArg(domain.ArgIsComposable); v != "" {
		op.IsComposable = isTrue(v)
	}
	return op, true
}

func (b *builder) update(op *domain.Operation, m *domain.Method, kind domain.OperationKind) (*domain.Operation, bool) {
	if len(m.Parameters) == 0 {
		b.fail(zerr.With(zerr.Wrap(domain.ErrUnsupportedOperationType,
			fmt.Sprintf("%s operation %s requires an entity parameter", kind, m.Name)), "operation", m.Name))
		return nil, false
	}
	entity := b.entityType(m.Parameters[0])
	if entity == nil {
		b.fail(zerr.With(zerr.Wrap(domain.ErrUnsupportedOperationType,
			fmt.Sprintf("%s operation %s requires an entity parameter", kind, m.Name)), "type", m.Parameters[0].Type))
		return nil, false
	}
	op.Kind = kind
	op.Entity = entity
	if kind == domain.OpCustom {
		op.Parameters = m.Parameters[1:]
	}
	return op, true
}

func (b *builder) invoke(op *domain.Operation, attr domain.Attribute) (*domain.Operation, bool) {
	op.Kind = domain.OpInvoke
	op.HasSideEffects = true
	if v := attr.NamedArg(domain.ArgHasSideEffects); v != "" {
		op.HasSideEffects = isTrue(v)
	}
	return op, true
}

// entityType resolves p to a non-service class of the table. Collections never resolve.
func (b *builder) entityType(p domain.Parameter) *domain.Type {
	if p.Collection || p.Type == "" || p.Type == domain.TypeVoid {
		return nil
	}
	t, ok := b.types.Lookup(p.Type)
	if !ok || t.Kind != domain.KindClass || b.types.DerivesFrom(t, domain.DomainServiceBaseType) {
		return nil
	}
	return t
}

func (b *builder) validateOperation(op *domain.Operation) bool {
	switch op.Kind {
	case domain.OpQuery:
		return !b.invalid[op.Entity.FullName()]
	case domain.OpInsert, domain.OpUpdate, domain.OpDelete, domain.OpCustom:
		if b.invalid[op.Entity.FullName()] {
			return false
		}
		if !b.desc.Exposes(op.Entity.FullName()) {
			err := zerr.Wrap(domain.ErrEntityNotExposed,
				fmt.Sprintf("%s operation %s targets entity %s which is not exposed by a query", op.Kind, op.Name, op.Entity.FullName()))
			b.fail(zerr.With(zerr.With(err, "operation", op.Name), "type", op.Entity.FullName()))
			return false
		}
		if op.Kind == domain.OpCustom {
			return b.validateParameters(op)
		}
		return true
	default:
		if !b.validateParameters(op) {
			return false
		}
		if op.ReturnType != "" && op.ReturnType != domain.TypeVoid && !b.supported(op.ReturnType) {
			b.fail(zerr.With(zerr.Wrap(domain.ErrUnsupportedOperationType,
				fmt.Sprintf("operation %s returns unsupported type %s", op.Name, op.ReturnType)), "type", op.ReturnType))
			return false
		}
		return true
	}
}

func (b *builder) validateParameters(op *domain.Operation) bool {
	for _, p := range op.Parameters {
		if !b.supported(p.Type) {
			b.fail(zerr.With(zerr.Wrap(domain.ErrUnsupportedOperationType,
				fmt.Sprintf("parameter %s of operation %s has unsupported type %s", p.Name, op.Name, p.Type)), "type", p.Type))
			return false
		}
	}
	return true
}

// supported reports whether a parameter or return type can cross the wire.
func (b *builder) supported(typeName string) bool {
	fullName, _ := domain.ParseQualifiedName(typeName)
	if domain.IsPrimitiveType(fullName) || b.types.IsEnum(fullName) {
		return true
	}
	return b.desc.Exposes(fullName)
}

// addEntity exposes t together with its known types and included association targets.
func (b *builder) addEntity(t *domain.Type) {
	name := t.FullName()
	if b.desc.Exposes(name) || b.invalid[name] {
		return
	}

	ed := &domain.EntityDescription{Type: t}
	chain := append([]*domain.Type{t}, b.types.BaseChain(t)...)

	for i := len(chain) - 1; i >= 0; i-- {
		for _, p := range chain[i].Properties {
			if p.Attributes.Has(domain.AttrKey) {
				ed.Keys = append(ed.Keys, p.Name)
			}
		}
	}
	if len(ed.Keys) == 0 {
		b.invalid[name] = true
		b.fail(zerr.With(zerr.Wrap(domain.ErrEntityWithoutKey,
			fmt.Sprintf("entity %s does not declare a key", name)), "type", name))
		return
	}

	var includes []*domain.Type
	for _, decl := range chain {
		for _, p := range decl.Properties {
			switch {
			case p.Attributes.Has(domain.AttrExclude):
				b.desc.Directives.Set(decl.FullName(), p.Name, domain.DirectiveExclude)
			case p.Attributes.Has(domain.AttrInclude):
				b.desc.Directives.Set(decl.FullName(), p.Name, domain.DirectiveInclude)
			}

			assoc, ok, err := b.association(decl, chain, p)
			if err != nil {
				b.invalid[name] = true
				b.fail(zerr.With(err, "type", name))
				return
			}
			if !ok {
				continue
			}
			ed.Associations = append(ed.Associations, assoc)
			if b.included(name, decl.FullName(), p.Name) {
				if target, found := b.types.Lookup(assoc.Target); found {
					includes = append(includes, target)
				}
			}
		}
	}

	var known []*domain.Type
	for _, attr := range t.Attributes.All(domain.AttrKnownType) {
		kt, ok := b.types.Lookup(attr.Arg(0))
		if !ok || !b.types.IsStrictlyDerived(kt, t) {
			b.invalid[name] = true
			err := zerr.Wrap(domain.ErrInvalidKnownType,
				fmt.Sprintf("known type %s of entity %s does not derive from it", attr.Arg(0), name))
			b.fail(zerr.With(err, "type", name))
			return
		}
		ed.KnownTypes = append(ed.KnownTypes, kt.FullName())
		known = append(known, kt)
	}

	b.desc.Entities = append(b.desc.Entities, ed)
	for _, kt := range known {
		b.addEntity(kt)
	}
	for _, target := range includes {
		b.addEntity(target)
	}
}

// association reads the association declared on p of decl. chain holds the entity and its bases.
func (b *builder) association(decl *domain.Type, chain []*domain.Type, p *domain.Property) (domain.Association, bool, error) {
	attr, ok := p.Attributes.Find(domain.AttrAssociation)
	if !ok {
		if p.Attributes.Has(domain.AttrComposition) {
			return domain.Association{}, false, zerr.With(zerr.Wrap(domain.ErrInvalidComposition,
				fmt.Sprintf("composition %s.%s has no association", decl.FullName(), p.Name)), "property", p.Name)
		}
		return domain.Association{}, false, nil
	}

	target, _ := domain.ParseQualifiedName(p.Type)
	assoc := domain.Association{
		Name:          attr.Arg(0),
		Property:      p.Name,
		Target:        target,
		ThisKey:       splitKeys(attr.Arg(1)),
		OtherKey:      splitKeys(attr.Arg(2)),
		Collection:    p.Collection,
		IsComposition: p.Attributes.Has(domain.AttrComposition),
	}

	invalid := func(msg string) error {
		err := zerr.Wrap(domain.ErrInvalidAssociation, fmt.Sprintf("association %s on %s.%s: %s", assoc.Name, decl.FullName(), p.Name, msg))
		return zerr.With(err, "property", p.Name)
	}
	if assoc.Name == "" || len(assoc.ThisKey) == 0 || len(assoc.ThisKey) != len(assoc.OtherKey) {
		return assoc, false, invalid("name and matching key lists are required")
	}
	for _, k := range assoc.ThisKey {
		if !hasProperty(chain, k) {
			return assoc, false, invalid(fmt.Sprintf("key member %s not found", k))
		}
	}
	targetType, found := b.types.Lookup(target)
	if !found {
		return assoc, false, invalid(fmt.Sprintf("target type %s not found", target))
	}
	targetChain := append([]*domain.Type{targetType}, b.types.BaseChain(targetType)...)
	for _, k := range assoc.OtherKey {
		if !hasProperty(targetChain, k) {
			return assoc, false, invalid(fmt.Sprintf("key member %s not found on %s", k, target))
		}
	}
	return assoc, true, nil
}

// included reports whether member is included on the entity or its declaring type and excluded on neither.
func (b *builder) included(entity, decl, member string) bool {
	d1 := b.desc.Directives.Get(entity, member)
	d2 := b.desc.Directives.Get(decl, member)
	if d1 == domain.DirectiveExclude || d2 == domain.DirectiveExclude {
		return false
	}
	return d1 == domain.DirectiveInclude || d2 == domain.DirectiveInclude
}

// collectServiceDirectives records the member overlays declared on the service type.
// They are read before the entity closure so an included association pulls in its target.
func (b *builder) collectServiceDirectives() {
	for _, pair := range []struct {
		attr string
		d    domain.Directive
	}{
		{domain.AttrExcludeMember, domain.DirectiveExclude},
		{domain.AttrIncludeMember, domain.DirectiveInclude},
	} {
		for _, attr := range b.service.Attributes.All(pair.attr) {
			entity, member := attr.Arg(0), attr.Arg(1)
			if entity == "" || member == "" {
				continue
			}
			if t, ok := b.types.Lookup(entity); ok {
				entity = t.FullName()
			}
			b.desc.Directives.Set(entity, member, pair.d)
		}
	}
}

func (b *builder) resolveCodeProcessor() {
	attr, _ := b.service.Attributes.Find(domain.AttrEnableClientAccess)
	name := attr.NamedArg(domain.ArgCodeProcessor)
	if name == "" {
		return
	}
	t, ok := b.types.Lookup(name)
	if !ok {
		b.fail(zerr.With(zerr.Wrap(domain.ErrInvalidCodeProcessor,
			fmt.Sprintf("code processor type %s could not be found", name)), "processor", name))
		return
	}
	if !b.types.DerivesFrom(t, domain.CodeProcessorBaseType) {
		b.fail(zerr.With(zerr.Wrap(domain.ErrInvalidCodeProcessor,
			fmt.Sprintf("code processor type %s must derive from %s", name, domain.CodeProcessorBaseType)), "processor", name))
		return
	}
	b.desc.CodeProcessor = t.FullName()
}

func (b *builder) fail(err error) {
	b.log.Error(zerr.With(err, "service", b.service.FullName()))
}

func hasProperty(chain []*domain.Type, name string) bool {
	for _, t := range chain {
		if t.Property(name) != nil {
			return true
		}
	}
	return false
}

func splitKeys(s string) []string {
	var out []string
	for k := range strings.SplitSeq(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
