package domain

import "strings"

// OperationKind classifies a domain service operation.
type OperationKind int

const (
	// OpQuery returns entities.
	OpQuery OperationKind = iota
	// OpInsert adds an entity.
	OpInsert
	// OpUpdate modifies an entity.
	OpUpdate
	// OpDelete removes an entity.
	OpDelete
	// OpCustom is a named update method invoked on an entity.
	OpCustom
	// OpInvoke is a service method that is not tied to change tracking.
	OpInvoke
)

func (k OperationKind) String() string {
	switch k {
	case OpQuery:
		return "query"
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpCustom:
		return "custom"
	default:
		return "invoke"
	}
}

// Operation is one operation exposed by a domain service.
type Operation struct {
	Name   string
	Kind   OperationKind
	Method *Method
	// Entity is the query element type, or the entity argument of an update-style operation.
	Entity *Type
	// Parameters excludes the entity argument of custom methods.
	Parameters        []Parameter
	ReturnType        string
	ReturnsCollection bool
	IsComposable      bool
	HasSideEffects    bool
}

// Signature returns the case-folded, comma separated parameter type list.
func (o *Operation) Signature() string {
	names := make([]string, len(o.Parameters))
	for i, p := range o.Parameters {
		names[i] = strings.ToLower(p.Type)
		if p.Collection {
			names[i] += "[]"
		}
	}
	return strings.Join(names, ",")
}

// Association describes a navigation property between two entities.
type Association struct {
	Name          string
	Property      string
	Target        string
	ThisKey       []string
	OtherKey      []string
	Collection    bool
	IsComposition bool
}

// EntityDescription is the attribute-derived shape of one entity type.
type EntityDescription struct {
	Type         *Type
	Keys         []string
	Associations []Association
	KnownTypes   []string
}

// Association returns the association declared on property name.
func (e *EntityDescription) Association(property string) (Association, bool) {
	for _, a := range e.Associations {
		if a.Property == property {
			return a, true
		}
	}
	return Association{}, false
}

// Directive is an explicit visibility directive for an entity member.
type Directive int

const (
	// DirectiveNone leaves default visibility rules in effect.
	DirectiveNone Directive = iota
	// DirectiveInclude forces the member to be generated.
	DirectiveInclude
	// DirectiveExclude suppresses the member.
	DirectiveExclude
)

// ShapingDirectives holds Include and Exclude directives keyed by entity and member name.
// Exclude wins over Include for the same member.
type ShapingDirectives struct {
	members map[string]Directive
}

// NewShapingDirectives creates an empty directive set.
func NewShapingDirectives() ShapingDirectives {
	return ShapingDirectives{members: make(map[string]Directive)}
}

func directiveKey(entity, member string) string {
	return strings.ToLower(entity) + "|" + strings.ToLower(member)
}

// Set records d for entity.member.
func (s *ShapingDirectives) Set(entity, member string, d Directive) {
	if s.members == nil {
		s.members = make(map[string]Directive)
	}
	key := directiveKey(entity, member)
	if s.members[key] == DirectiveExclude {
		return
	}
	s.members[key] = d
}

// Get returns the directive for entity.member.
func (s ShapingDirectives) Get(entity, member string) Directive {
	return s.members[directiveKey(entity, member)]
}

// Merge folds other into s.
func (s *ShapingDirectives) Merge(other ShapingDirectives) {
	for key, d := range other.members {
		if s.members == nil {
			s.members = make(map[string]Directive)
		}
		if s.members[key] != DirectiveExclude {
			s.members[key] = d
		}
	}
}

// Len returns the number of recorded directives.
func (s ShapingDirectives) Len() int {
	return len(s.members)
}

// DomainServiceDescription is the immutable description of one domain service.
type DomainServiceDescription struct {
	Type          *Type
	Entities      []*EntityDescription
	Operations    []*Operation
	CodeProcessor string
	Directives    ShapingDirectives
}

// Name returns the simple name of the service type.
func (d *DomainServiceDescription) Name() string {
	return d.Type.Name
}

// FullName returns the full name of the service type.
func (d *DomainServiceDescription) FullName() string {
	return d.Type.FullName()
}

// Entity returns the description of an exposed entity.
func (d *DomainServiceDescription) Entity(fullName string) *EntityDescription {
	for _, e := range d.Entities {
		if strings.EqualFold(e.Type.FullName(), fullName) {
			return e
		}
	}
	return nil
}

// Exposes reports whether the service exposes the entity.
func (d *DomainServiceDescription) Exposes(fullName string) bool {
	return d.Entity(fullName) != nil
}

// OperationsOf returns the operations of kind k.
func (d *DomainServiceDescription) OperationsOf(k OperationKind) []*Operation {
	var out []*Operation
	for _, op := range d.Operations {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// SupportsOperation reports whether an operation of kind k exists for the entity.
func (d *DomainServiceDescription) SupportsOperation(entity string, k OperationKind) bool {
	for _, op := range d.Operations {
		if op.Kind == k && op.Entity != nil && strings.EqualFold(op.Entity.FullName(), entity) {
			return true
		}
	}
	return false
}
