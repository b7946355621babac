package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Language is the closed set of target languages a generator can be registered for.
type Language string

const (
	// LanguageCSharp targets C#.
	LanguageCSharp Language = "C#"
	// LanguageVisualBasic targets Visual Basic.
	LanguageVisualBasic Language = "VB"
)

// ParseLanguage maps a language identifier to a Language.
// It returns ErrNoGeneratorFound for identifiers outside the supported set.
func ParseLanguage(id string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "c#", "cs", "csharp":
		return LanguageCSharp, nil
	case "vb", "visualbasic", "visual basic", "vbnet":
		return LanguageVisualBasic, nil
	}
	return "", zerr.With(zerr.Wrap(ErrNoGeneratorFound, "unsupported language"), "language", id)
}

// TargetPlatform identifies the client framework the generated code compiles against.
type TargetPlatform string

const (
	// PlatformDesktop is the full desktop framework.
	PlatformDesktop TargetPlatform = "Desktop"
	// PlatformSilverlight is the Silverlight runtime.
	PlatformSilverlight TargetPlatform = "Silverlight"
	// PlatformPortable is a portable class library.
	PlatformPortable TargetPlatform = "Portable"
	// PlatformNetStandard is a .NET Standard library.
	PlatformNetStandard TargetPlatform = "NetStandard"
)

// ParseTargetPlatform maps a platform name to a TargetPlatform, defaulting to Portable.
func ParseTargetPlatform(name string) (TargetPlatform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "portable":
		return PlatformPortable, nil
	case "desktop":
		return PlatformDesktop, nil
	case "silverlight":
		return PlatformSilverlight, nil
	case "netstandard":
		return PlatformNetStandard, nil
	}
	return "", zerr.With(zerr.Wrap(ErrConfigInvalid, "unknown target platform"), "target_platform", name)
}

// GenerationOptions is the option surface consumed by the code generation dispatcher.
type GenerationOptions struct {
	Language            string
	ClientProjectPath   string
	ClientRootNamespace string
	UseFullTypeNames    bool
	TargetPlatform      TargetPlatform
}
