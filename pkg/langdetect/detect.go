// Package langdetect decides which files kotlint treats as Kotlin source.
// It uses go-enry's extension and shebang tables, so extensionless scripts
// run through the kotlin interpreter are picked up as well, and its vendor
// and generated-code heuristics to leave third-party output alone.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind classifies a file.
type Kind int

const (
	// Unknown is anything that is not Kotlin.
	Unknown Kind = iota

	// Kotlin is a regular source file (".kt").
	Kotlin

	// KotlinScript is a script (".kts" or a kotlin shebang).
	KotlinScript
)

// enryKotlin is the linguist name of the language.
const enryKotlin = "Kotlin"

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Kotlin:
		return "kotlin"
	case KotlinScript:
		return "kotlin-script"
	default:
		return "unknown"
	}
}

// IsKotlin reports whether the kind is either Kotlin flavour.
func (k Kind) IsKotlin() bool {
	return k == Kotlin || k == KotlinScript
}

// DefaultExtensions returns the file extensions linted by default.
func DefaultExtensions() []string {
	return []string{".kt", ".kts"}
}

// ByName classifies a file from its name alone.
func ByName(path string) Kind {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".kts") {
		return KotlinScript
	}
	if lang, safe := enry.GetLanguageByExtension(name); safe && lang == enryKotlin {
		return Kotlin
	}
	return Unknown
}

// Detect classifies a file by name, falling back to the shebang line for
// files without a Kotlin extension.
func Detect(path string, content []byte) Kind {
	if kind := ByName(path); kind != Unknown {
		return kind
	}
	if filepath.Ext(path) != "" || len(content) == 0 {
		return Unknown
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang == enryKotlin {
		return KotlinScript
	}
	if isKotlinShebang(content) {
		return KotlinScript
	}
	return Unknown
}

// isKotlinShebang recognizes "#!/usr/bin/env kotlin" and
// "#!/usr/bin/env -S kotlinc -script", which older linguist tables miss.
func isKotlinShebang(content []byte) bool {
	line, _, _ := strings.Cut(string(content), "\n")
	rest, ok := strings.CutPrefix(line, "#!")
	if !ok {
		return false
	}
	for _, field := range strings.Fields(rest) {
		switch filepath.Base(field) {
		case "kotlin", "kotlinc", "kscript":
			return true
		}
	}
	return false
}

// IsThirdParty reports whether a path looks like vendored or generated
// code that should not be linted.
func IsThirdParty(path string, content []byte) bool {
	slashed := filepath.ToSlash(path)
	if enry.IsVendor(slashed) {
		return true
	}
	return content != nil && enry.IsGenerated(slashed, content)
}
