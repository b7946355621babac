package domain

// CodeMemberShareKind classifies whether a server type or member already exists on the client.
type CodeMemberShareKind int

const (
	// ShareUnknown means the classification could not be determined.
	ShareUnknown CodeMemberShareKind = 0
	// ShareNone means the member is not available on the client and must be generated.
	ShareNone CodeMemberShareKind = 1
	// SharedBySource means the member is compiled into the client from a linked source file.
	SharedBySource CodeMemberShareKind = 2
	// SharedByReference means the member lives in an assembly the client references.
	SharedByReference CodeMemberShareKind = 4
)

// IsShared reports whether the member is available on the client and excluded from generation.
func (k CodeMemberShareKind) IsShared() bool {
	return k&(SharedBySource|SharedByReference) != 0
}

func (k CodeMemberShareKind) String() string {
	switch k {
	case ShareNone:
		return "NotShared"
	case SharedBySource:
		return "SharedBySource"
	case SharedByReference:
		return "SharedByReference"
	case SharedBySource | SharedByReference:
		return "Shared"
	default:
		return "Unknown"
	}
}
