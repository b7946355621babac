package ports

import "go.trai.ch/riagen/internal/core/domain"

// SharedCodeService classifies server types and members by whether the client already has them.
// Keys are assembly-qualified type names and are compared case-insensitively.
//
//go:generate mockgen -source=shared.go -destination=mocks/mock_shared.go -package=mocks
type SharedCodeService interface {
	TypeShareKind(typeAQN string) domain.CodeMemberShareKind
	PropertyShareKind(typeAQN, propertyName string) domain.CodeMemberShareKind
	MethodShareKind(typeAQN, methodName string, parameterTypeAQNs []string) domain.CodeMemberShareKind
}
