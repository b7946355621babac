package domain

import "go.trai.ch/zerr"

var (
	// ErrAssemblyLoadFailed is returned when an assembly metadata file cannot be read or parsed.
	ErrAssemblyLoadFailed = zerr.New("failed to load assembly metadata")

	// ErrTypeNotFound is returned when a type name cannot be resolved in the type table.
	ErrTypeNotFound = zerr.New("type not found")

	// ErrDuplicateType is returned when two server assemblies declare the same type full name.
	ErrDuplicateType = zerr.New("duplicate type")

	// ErrProjectReferenceCycle is returned when project references form a cycle.
	ErrProjectReferenceCycle = zerr.New("project reference cycle detected")

	// ErrProjectLoadFailed is returned when a build project file cannot be read or parsed.
	ErrProjectLoadFailed = zerr.New("failed to load project file")

	// ErrBreadcrumbParseFailed is returned when a breadcrumb cache file is malformed.
	ErrBreadcrumbParseFailed = zerr.New("failed to parse breadcrumb file")

	// ErrBreadcrumbWriteFailed is returned when a breadcrumb cache file cannot be written.
	ErrBreadcrumbWriteFailed = zerr.New("failed to write breadcrumb file")

	// ErrEntityWithoutKey is returned when an exposed entity declares no key members.
	ErrEntityWithoutKey = zerr.New("entity has no key members")

	// ErrInvalidAssociation is returned when an association references key members that do not exist.
	ErrInvalidAssociation = zerr.New("invalid association")

	// ErrInvalidComposition is returned when a composition is declared without an association.
	ErrInvalidComposition = zerr.New("composition requires an association")

	// ErrInvalidKnownType is returned when a KnownType does not derive from the declaring entity.
	ErrInvalidKnownType = zerr.New("known type is not derived from the declaring entity")

	// ErrEntityNotExposed is returned when an operation targets an entity no query exposes.
	ErrEntityNotExposed = zerr.New("entity is not exposed by a query operation")

	// ErrUnsupportedOperationType is returned when an invoke operation uses an unsupported type.
	ErrUnsupportedOperationType = zerr.New("unsupported operation type")

	// ErrInvalidCodeProcessor is returned when a declared code processor type is unusable.
	ErrInvalidCodeProcessor = zerr.New("invalid code processor")

	// ErrCodeProcessorFailed is returned when a code processor fails while rewriting generated code.
	ErrCodeProcessorFailed = zerr.New("code processor failed")

	// ErrSharedEntityNotLeastDerived is reported when two services expose uneven slices of one hierarchy.
	ErrSharedEntityNotLeastDerived = zerr.New("shared entity must be least derived type")

	// ErrDuplicateCustomMethod is reported when named update methods share a name but not a signature.
	ErrDuplicateCustomMethod = zerr.New("duplicate custom method name")

	// ErrNoGeneratorFound is returned when no code generator is registered for a language.
	ErrNoGeneratorFound = zerr.New("no code generator found for language")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config file entry fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrNoProjectsConfigured is returned when the config lists no client projects.
	ErrNoProjectsConfigured = zerr.New("no client projects configured")

	// ErrGenerationFailed is returned when a generation pass logged errors.
	ErrGenerationFailed = zerr.New("code generation failed")

	// ErrStoreReadFailed is returned when the generation state cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read generation state")

	// ErrStoreWriteFailed is returned when the generation state cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write generation state")
)
