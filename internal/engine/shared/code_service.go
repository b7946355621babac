package shared

import (
	"strings"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
)

var _ ports.SharedCodeService = (*CodeService)(nil)

// CodeService combines source sharing and assembly sharing into one classification per type
// and member. Results are memoised for the lifetime of the service.
type CodeService struct {
	server     *domain.TypeTable
	assemblies *Assemblies
	sources    *SourceFiles
	memo       map[string]domain.CodeMemberShareKind
}

// NewCodeService creates a service classifying types of the server table.
func NewCodeService(server *domain.TypeTable, assemblies *Assemblies, sources *SourceFiles) *CodeService {
	if sources == nil {
		sources = NewSourceFiles(nil)
	}
	return &CodeService{
		server:     server,
		assemblies: assemblies,
		sources:    sources,
		memo:       make(map[string]domain.CodeMemberShareKind),
	}
}

// TypeShareKind classifies a type.
func (s *CodeService) TypeShareKind(typeAQN string) domain.CodeMemberShareKind {
	return s.memoize("t|"+strings.ToLower(typeAQN), func() domain.CodeMemberShareKind {
		if strings.TrimSpace(typeAQN) == "" {
			return domain.ShareUnknown
		}
		if t, ok := s.server.Lookup(typeAQN); ok && s.sources.TypeShared(t) {
			return domain.SharedBySource
		}
		if s.assemblies != nil && s.assemblies.SharedType(typeAQN) != nil {
			return domain.SharedByReference
		}
		return domain.ShareNone
	})
}

// PropertyShareKind classifies a property.
func (s *CodeService) PropertyShareKind(typeAQN, propertyName string) domain.CodeMemberShareKind {
	return s.memoize("p|"+memberKey(typeAQN, propertyName), func() domain.CodeMemberShareKind {
		if t, ok := s.server.Lookup(typeAQN); ok {
			if p := t.Property(propertyName); p != nil && s.sources.Contains(p.SourceFile) {
				return domain.SharedBySource
			}
		}
		if s.assemblies != nil && s.assemblies.SharedProperty(typeAQN, propertyName) != nil {
			return domain.SharedByReference
		}
		return domain.ShareNone
	})
}

// MethodShareKind classifies a method by name and parameter types.
func (s *CodeService) MethodShareKind(typeAQN, methodName string, parameterTypeAQNs []string) domain.CodeMemberShareKind {
	return s.memoize("m|"+memberKey(typeAQN, methodName, parameterTypeAQNs...), func() domain.CodeMemberShareKind {
		if t, ok := s.server.Lookup(typeAQN); ok {
			for _, m := range t.Methods {
				if m.Name == methodName && parametersMatch(m.ParameterTypes(), parameterTypeAQNs) && s.sources.Contains(m.SourceFile) {
					return domain.SharedBySource
				}
			}
		}
		if s.assemblies != nil && s.assemblies.SharedMethod(typeAQN, methodName, parameterTypeAQNs) != nil {
			return domain.SharedByReference
		}
		return domain.ShareNone
	})
}

func (s *CodeService) memoize(key string, compute func() domain.CodeMemberShareKind) domain.CodeMemberShareKind {
	if kind, ok := s.memo[key]; ok {
		return kind
	}
	kind := compute()
	s.memo[key] = kind
	return kind
}

// memberKey builds a memo key for a member. Type and parameter names compare case-insensitively
// while the member name keeps its case, as member lookups are case-sensitive.
func memberKey(typeAQN, member string, parameterTypeAQNs ...string) string {
	key := strings.ToLower(typeAQN) + "|" + member
	if len(parameterTypeAQNs) > 0 {
		key += "|" + strings.ToLower(strings.Join(parameterTypeAQNs, ";"))
	}
	return key
}
