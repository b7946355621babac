// Package shaping merges the descriptions of every domain service in a pass into one client model.
package shaping

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Build merges descriptions into a client model. Conflicts are logged and the conflicting entity
// is left out of the model; callers must check the log for errors before emitting code.
func Build(
	descriptions []*domain.DomainServiceDescription,
	types *domain.TypeTable,
	share ports.SharedCodeService,
	log ports.Logger,
) *domain.ClientModel {
	s := &shaper{
		descs:     descriptions,
		types:     types,
		share:     share,
		log:       log,
		entities:  make(map[string]*domain.ClientEntity),
		abandoned: make(map[string]bool),
		enums:     make(map[string]bool),
		model:     &domain.ClientModel{},
	}
	return s.build()
}

type shaper struct {
	descs []*domain.DomainServiceDescription
	types *domain.TypeTable
	share ports.SharedCodeService
	log   ports.Logger

	// order lists entity full names in first-exposure order.
	order        []string
	contributors map[string][]*domain.DomainServiceDescription
	// directives holds, per entity, the merged directives of its contributing services.
	directives map[string]domain.ShapingDirectives
	entities   map[string]*domain.ClientEntity
	abandoned  map[string]bool
	enums      map[string]bool
	model      *domain.ClientModel
}

func (s *shaper) build() *domain.ClientModel {
	s.collect()
	s.checkLeastDerived()

	for _, name := range s.order {
		if !s.abandoned[key(name)] {
			s.entities[key(name)] = &domain.ClientEntity{Type: s.typeOf(name)}
		}
	}
	for _, name := range s.order {
		if e := s.entities[key(name)]; e != nil {
			s.linkBase(e)
		}
	}
	for _, name := range s.order {
		if e := s.entities[key(name)]; e != nil {
			s.shapeEntity(e)
		}
	}
	for _, name := range s.order {
		e := s.entities[key(name)]
		if e == nil || !s.customMethods(e) {
			continue
		}
		s.model.Entities = append(s.model.Entities, e)
	}
	s.dropAbandoned()
	s.knownTypes()

	for _, d := range s.descs {
		s.model.Services = append(s.model.Services, s.context(d))
	}
	return s.model
}

func key(fullName string) string {
	return strings.ToLower(fullName)
}

// collect indexes every exposed entity and the services contributing to it.
func (s *shaper) collect() {
	s.contributors = make(map[string][]*domain.DomainServiceDescription)
	s.directives = make(map[string]domain.ShapingDirectives)
	for _, d := range s.descs {
		for _, ed := range d.Entities {
			k := key(ed.Type.FullName())
			if _, ok := s.contributors[k]; !ok {
				s.order = append(s.order, ed.Type.FullName())
				s.directives[k] = domain.NewShapingDirectives()
			}
			s.contributors[k] = append(s.contributors[k], d)
			merged := s.directives[k]
			merged.Merge(d.Directives)
			s.directives[k] = merged
		}
	}
}

func (s *shaper) typeOf(fullName string) *domain.Type {
	for _, d := range s.contributors[key(fullName)] {
		if ed := d.Entity(fullName); ed != nil {
			return ed.Type
		}
	}
	return nil
}

func (s *shaper) exposed(fullName string) bool {
	k := key(fullName)
	return len(s.contributors[k]) > 0 && !s.abandoned[k]
}

// checkLeastDerived rejects a hierarchy one service exposes at a base type and another service
// exposes only at a strictly derived type the base does not list as a known type.
func (s *shaper) checkLeastDerived() {
	reported := make(map[string]bool)
	for _, a := range s.descs {
		for _, x := range a.Entities {
			known := s.knownTypeClosure(x.Type)
			for _, b := range s.descs {
				if a == b {
					continue
				}
				for _, z := range b.Entities {
					if !s.types.IsStrictlyDerived(z.Type, x.Type) || a.Exposes(z.Type.FullName()) || known[key(z.Type.FullName())] {
						continue
					}
					pair := key(x.Type.FullName()) + "|" + key(z.Type.FullName())
					if reported[pair] {
						continue
					}
					reported[pair] = true
					s.abandoned[key(z.Type.FullName())] = true

					msg := fmt.Sprintf(
						"entity %s exposed by domain service %s and derived entity %s exposed by domain service %s: %s must be listed as a known type of %s",
						x.Type.FullName(), a.FullName(), z.Type.FullName(), b.FullName(), z.Type.FullName(), x.Type.FullName())
					err := zerr.With(zerr.Wrap(domain.ErrSharedEntityNotLeastDerived, msg), "type", x.Type.FullName())
					err = zerr.With(err, "derived_type", z.Type.FullName())
					err = zerr.With(err, "service", a.FullName())
					s.log.Error(zerr.With(err, "other_service", b.FullName()))
				}
			}
		}
	}
}

func (s *shaper) knownTypeClosure(t *domain.Type) map[string]bool {
	out := make(map[string]bool)
	queue := []*domain.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, attr := range cur.Attributes.All(domain.AttrKnownType) {
			kt, ok := s.types.Lookup(attr.Arg(0))
			if !ok || out[key(kt.FullName())] {
				continue
			}
			out[key(kt.FullName())] = true
			queue = append(queue, kt)
		}
	}
	return out
}

// linkBase points e at its nearest exposed ancestor.
func (s *shaper) linkBase(e *domain.ClientEntity) {
	for _, base := range s.types.BaseChain(e.Type) {
		if b := s.entities[key(base.FullName())]; b != nil {
			e.Base = b
			return
		}
	}
}

// declaringChain returns e's type followed by the non-exposed ancestors flattened into it.
func (s *shaper) declaringChain(e *domain.ClientEntity) []*domain.Type {
	chain := []*domain.Type{e.Type}
	for _, base := range s.types.BaseChain(e.Type) {
		if e.Base != nil && base == e.Base.Type {
			break
		}
		chain = append(chain, base)
	}
	return chain
}

func (s *shaper) directive(e *domain.ClientEntity, decl *domain.Type, member string) domain.Directive {
	directives := s.directives[key(e.Type.FullName())]
	d1 := directives.Get(decl.FullName(), member)
	d2 := directives.Get(e.Type.FullName(), member)
	switch {
	case d1 == domain.DirectiveExclude || d2 == domain.DirectiveExclude:
		return domain.DirectiveExclude
	case d1 == domain.DirectiveInclude || d2 == domain.DirectiveInclude:
		return domain.DirectiveInclude
	}
	return domain.DirectiveNone
}

func (s *shaper) shapeEntity(e *domain.ClientEntity) {
	contributors := s.contributors[key(e.Type.FullName())]
	e.Services = contributors
	e.Shared = s.share.TypeShareKind(e.Type.AssemblyQualifiedName())

	if ed := contributors[0].Entity(e.Type.FullName()); ed != nil {
		e.Keys = ed.Keys
	}

	chain := s.declaringChain(e)
	for i := len(chain) - 1; i >= 0; i-- {
		decl := chain[i]
		for _, p := range decl.Properties {
			cp := s.shapeProperty(e, decl, p, contributors)
			if cp == nil {
				continue
			}
			e.Properties = append(e.Properties, cp)
		}
	}

	lineage := append([]*domain.Type{e.Type}, s.types.BaseChain(e.Type)...)
	for _, d := range contributors {
		for _, t := range lineage {
			e.CanInsert = e.CanInsert || d.SupportsOperation(t.FullName(), domain.OpInsert)
			e.CanUpdate = e.CanUpdate || d.SupportsOperation(t.FullName(), domain.OpUpdate)
			e.CanDelete = e.CanDelete || d.SupportsOperation(t.FullName(), domain.OpDelete)
		}
	}
}

func (s *shaper) shapeProperty(e *domain.ClientEntity, decl *domain.Type, p *domain.Property, contributors []*domain.DomainServiceDescription) *domain.ClientProperty {
	directive := s.directive(e, decl, p.Name)
	if directive == domain.DirectiveExclude {
		return nil
	}
	forced := directive == domain.DirectiveInclude
	cp := &domain.ClientProperty{
		Property:      p,
		DeclaringType: decl,
		IsKey:         slices.Contains(e.Keys, p.Name),
		Shared:        s.share.PropertyShareKind(decl.AssemblyQualifiedName(), p.Name),
	}

	if assoc, ok := s.association(e, p.Name, contributors); ok {
		// Without an Include, an association survives only when a contributing service reaches its target.
		reached := forced
		for _, d := range contributors {
			if d.Exposes(assoc.Target) {
				reached = true
				break
			}
		}
		if !reached || !s.exposed(assoc.Target) {
			return nil
		}
		a := assoc
		cp.Association = &a
		cp.Target = s.entities[key(assoc.Target)]
		return cp
	}

	typeName, _ := domain.ParseQualifiedName(p.Type)
	switch {
	case domain.IsPrimitiveType(typeName):
	case s.types.IsEnum(typeName):
		s.useEnum(typeName)
	case forced:
	default:
		return nil
	}
	return cp
}

func (s *shaper) association(e *domain.ClientEntity, property string, contributors []*domain.DomainServiceDescription) (domain.Association, bool) {
	for _, d := range contributors {
		if ed := d.Entity(e.Type.FullName()); ed != nil {
			if a, ok := ed.Association(property); ok {
				return a, true
			}
		}
	}
	return domain.Association{}, false
}

// customMethods merges the named update methods every contributing service declares for e.
// It reports false when two services disagree on a signature.
func (s *shaper) customMethods(e *domain.ClientEntity) bool {
	type contribution struct {
		method    *domain.ClientMethod
		signature string
	}
	byName := make(map[string]*contribution)

	for _, d := range e.Services {
		for _, op := range d.OperationsOf(domain.OpCustom) {
			if op.Entity == nil || !strings.EqualFold(op.Entity.FullName(), e.Type.FullName()) {
				continue
			}
			sig := op.Signature()
			existing, ok := byName[op.Name]
			if !ok {
				cm := &domain.ClientMethod{
					Name:       op.Name,
					Parameters: op.Parameters,
					Services:   []*domain.DomainServiceDescription{d},
					Shared:     s.share.MethodShareKind(e.Type.AssemblyQualifiedName(), op.Name, parameterTypes(op.Parameters)),
				}
				byName[op.Name] = &contribution{method: cm, signature: sig}
				e.CustomMethods = append(e.CustomMethods, cm)
				continue
			}
			if existing.signature == sig {
				if !slices.Contains(existing.method.Services, d) {
					existing.method.Services = append(existing.method.Services, d)
				}
				continue
			}

			first := existing.method.Services[0]
			msg := fmt.Sprintf(
				"entity %s has custom method %s declared by domain service %s and domain service %s with different parameters",
				e.Type.FullName(), op.Name, first.FullName(), d.FullName())
			err := zerr.With(zerr.Wrap(domain.ErrDuplicateCustomMethod, msg), "type", e.Type.FullName())
			err = zerr.With(err, "method", op.Name)
			err = zerr.With(err, "service", first.FullName())
			s.log.Error(zerr.With(err, "other_service", d.FullName()))
			s.abandoned[key(e.Type.FullName())] = true
			return false
		}
	}

	for _, cm := range e.CustomMethods {
		for _, p := range cm.Parameters {
			if name, _ := domain.ParseQualifiedName(p.Type); s.types.IsEnum(name) {
				s.useEnum(name)
			}
		}
	}
	return true
}

// dropAbandoned removes references to entities abandoned after properties were shaped.
func (s *shaper) dropAbandoned() {
	for _, e := range s.model.Entities {
		if e.Base != nil && s.abandoned[key(e.Base.Type.FullName())] {
			e.Base = nil
		}
		e.Properties = slices.DeleteFunc(e.Properties, func(p *domain.ClientProperty) bool {
			return p.Association != nil && s.abandoned[key(p.Association.Target)]
		})
	}
}

// knownTypes lists on every root entity the exposed entities deriving from it.
func (s *shaper) knownTypes() {
	for _, e := range s.model.Entities {
		if e.Base == nil {
			continue
		}
		root := e.Root()
		root.KnownTypes = append(root.KnownTypes, e)
	}
}

func (s *shaper) useEnum(fullName string) {
	k := key(fullName)
	if s.enums[k] {
		return
	}
	t, ok := s.types.Lookup(fullName)
	if !ok {
		return
	}
	s.enums[k] = true
	s.model.Enums = append(s.model.Enums, &domain.ClientEnum{
		Type:   t,
		Shared: s.share.TypeShareKind(t.AssemblyQualifiedName()),
	})
}

func (s *shaper) context(d *domain.DomainServiceDescription) *domain.ClientContext {
	name := ContextName(d.Name())
	fullName := name
	if d.Type.Namespace != "" {
		fullName = d.Type.Namespace + "." + name
	}
	// The client already declares the context when a referenced assembly contains it.
	ctx := &domain.ClientContext{
		Description: d,
		Name:        name,
		Namespace:   d.Type.Namespace,
		Shared:      s.share.TypeShareKind(fullName),
	}

	seen := make(map[*domain.ClientEntity]bool)
	for _, ed := range d.Entities {
		e := s.entities[key(ed.Type.FullName())]
		if e == nil || s.abandoned[key(ed.Type.FullName())] {
			continue
		}
		root := e.Root()
		if !seen[root] {
			seen[root] = true
			ctx.EntitySets = append(ctx.EntitySets, root)
		}
	}

	for _, op := range d.Operations {
		if op.Entity != nil && s.abandoned[key(op.Entity.FullName())] {
			continue
		}
		switch op.Kind {
		case domain.OpQuery:
			ctx.Queries = append(ctx.Queries, op)
		case domain.OpCustom:
			ctx.Custom = append(ctx.Custom, op)
		case domain.OpInvoke:
			ctx.Invokes = append(ctx.Invokes, op)
		}
		for _, p := range op.Parameters {
			if name, _ := domain.ParseQualifiedName(p.Type); s.types.IsEnum(name) {
				s.useEnum(name)
			}
		}
		if name, _ := domain.ParseQualifiedName(op.ReturnType); op.Kind == domain.OpInvoke && s.types.IsEnum(name) {
			s.useEnum(name)
		}
	}
	return ctx
}

func parameterTypes(params []domain.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// ContextName derives the client context name from a domain service name.
func ContextName(service string) string {
	if base, ok := strings.CutSuffix(service, "Service"); ok && base != "" {
		return base + "Context"
	}
	return service + "Context"
}

// Pluralize returns the entity set name for an entity name.
func Pluralize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case name == "":
		return name
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return name + "es"
	case len(name) > 1 && strings.HasSuffix(lower, "y") && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return name[:len(name)-1] + "ies"
	}
	return name + "s"
}
