package domain

import "strings"

// ClientModel is the merged, shaped client surface of every domain service in one pass.
type ClientModel struct {
	Services []*ClientContext
	Entities []*ClientEntity
	Enums    []*ClientEnum
}

// Entity returns the merged entity for a full type name.
func (m *ClientModel) Entity(fullName string) *ClientEntity {
	for _, e := range m.Entities {
		if strings.EqualFold(e.Type.FullName(), fullName) {
			return e
		}
	}
	return nil
}

// Descriptions returns the service descriptions in input order.
func (m *ClientModel) Descriptions() []*DomainServiceDescription {
	out := make([]*DomainServiceDescription, len(m.Services))
	for i, s := range m.Services {
		out[i] = s.Description
	}
	return out
}

// ClientContext is the client view of one domain service.
type ClientContext struct {
	Description *DomainServiceDescription
	Name        string
	Namespace   string
	Shared      CodeMemberShareKind
	// EntitySets lists the root entities that get an entity set on the context.
	EntitySets []*ClientEntity
	Queries    []*Operation
	Custom     []*Operation
	Invokes    []*Operation
}

// ClientEntity is one merged client entity class.
type ClientEntity struct {
	Type *Type
	// Base is the nearest exposed ancestor, nil for roots.
	Base          *ClientEntity
	Keys          []string
	Properties    []*ClientProperty
	CustomMethods []*ClientMethod
	KnownTypes    []*ClientEntity
	Services      []*DomainServiceDescription
	Shared        CodeMemberShareKind
	// CanInsert, CanUpdate and CanDelete are set when any contributing service supports the operation.
	CanInsert bool
	CanUpdate bool
	CanDelete bool
}

// Root returns the least derived exposed ancestor of the entity.
func (e *ClientEntity) Root() *ClientEntity {
	cur := e
	for cur.Base != nil {
		cur = cur.Base
	}
	return cur
}

// Property returns the emitted property with the given name.
func (e *ClientEntity) Property(name string) *ClientProperty {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ClientProperty is an emitted entity property.
type ClientProperty struct {
	*Property
	DeclaringType *Type
	Association   *Association
	Target        *ClientEntity
	IsKey         bool
	Shared        CodeMemberShareKind
}

// ClientMethod is a merged named update method on an entity.
type ClientMethod struct {
	Name       string
	Parameters []Parameter
	Services   []*DomainServiceDescription
	Shared     CodeMemberShareKind
}

// ClientEnum is an enum referenced by emitted members.
type ClientEnum struct {
	Type   *Type
	Shared CodeMemberShareKind
}
