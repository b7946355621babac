package domain

import "strings"

// Framework base types recognised by the generator.
const (
	DomainServiceBaseType = "OpenRiaServices.Server.DomainService"
	CodeProcessorBaseType = "OpenRiaServices.Server.CodeProcessor"
)

// TypeVoid is the full name of the void type.
const TypeVoid = "System.Void"

// Attribute names consumed from server metadata.
const (
	AttrEnableClientAccess = "EnableClientAccess"
	AttrDomainIdentifier   = "DomainIdentifier"
	AttrKey                = "Key"
	AttrAssociation        = "Association"
	AttrInclude            = "Include"
	AttrExclude            = "Exclude"
	AttrComposition        = "Composition"
	AttrKnownType          = "KnownType"
	AttrQuery              = "Query"
	AttrInsert             = "Insert"
	AttrUpdate             = "Update"
	AttrDelete             = "Delete"
	AttrInvoke             = "Invoke"
	AttrEntityAction       = "EntityAction"
	AttrIgnore             = "Ignore"
	AttrIncludeMember      = "IncludeMember"
	AttrExcludeMember      = "ExcludeMember"
	AttrEditable           = "Editable"
)

// Named attribute arguments.
const (
	ArgCodeProcessor     = "CodeProcessor"
	ArgUsingCustomMethod = "UsingCustomMethod"
	ArgHasSideEffects    = "HasSideEffects"
	ArgIsComposable      = "IsComposable"
)

var systemAssemblies = map[string]bool{
	"mscorlib":                              true,
	"system":                                true,
	"system.core":                           true,
	"system.runtime":                        true,
	"system.private.corelib":                true,
	"netstandard":                           true,
	"system.runtime.serialization":          true,
	"system.componentmodel.dataannotations": true,
}

// IsSystemAssemblyName reports whether name identifies a framework assembly whose types are
// compared by full name rather than assembly identity.
func IsSystemAssemblyName(name string) bool {
	return systemAssemblies[strings.ToLower(strings.TrimSpace(name))]
}

var primitiveTypes = map[string]bool{
	"System.String":         true,
	"System.Boolean":        true,
	"System.Char":           true,
	"System.Byte":           true,
	"System.SByte":          true,
	"System.Int16":          true,
	"System.Int32":          true,
	"System.Int64":          true,
	"System.UInt16":         true,
	"System.UInt32":         true,
	"System.UInt64":         true,
	"System.Single":         true,
	"System.Double":         true,
	"System.Decimal":        true,
	"System.DateTime":       true,
	"System.DateTimeOffset": true,
	"System.TimeSpan":       true,
	"System.Guid":           true,
	"System.Uri":            true,
	"System.Byte[]":         true,
	"System.Object":         true,
}

// IsPrimitiveType reports whether a full type name is serializable without generation.
func IsPrimitiveType(fullName string) bool {
	return primitiveTypes[fullName]
}
