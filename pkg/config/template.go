package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the available rules. Only used by full templates.
	Rules []RuleInfo

	// CodeStyle is written as the active code style when set.
	CodeStyle string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID             string
	Description    string
	Enabled        bool
	Experimental   bool
	CanAutocorrect bool
	Properties     []Property
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n# Code style: ktlint_official, intellij_idea or android_studio\n")
	if opts.CodeStyle != "" {
		fmt.Fprintf(&buf, "code_style: %s\n", opts.CodeStyle)
	} else {
		buf.WriteString("# code_style: ktlint_official\n")
	}
	buf.WriteString(`
# Enable rules marked as experimental
# experimental: false

# File patterns to ignore (doublestar glob patterns)
# ignore:
#   - "build/**"
#   - "**/generated/**"

# Property overrides that win over every .editorconfig file
# editorconfig:
#   max_line_length: "120"
#   indent_size: "4"
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   standard:no-wildcard-imports:
#     enabled: false
#   standard:max-line-length:
#     severity: warning
`)
		return buf.Bytes()
	}

	rules := append([]RuleInfo(nil), opts.Rules...)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	buf.WriteString("\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if rule.Experimental {
			buf.WriteString("  # Experimental: yes\n")
		}
		if rule.CanAutocorrect {
			buf.WriteString("  # Auto-correct: yes\n")
		}
		for _, p := range rule.Properties {
			fmt.Fprintf(&buf, "  # Property %s (%s, default %q)\n", p.Name, p.Type, p.Default)
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# kotlint configuration
# Per-file style properties (indent_size, max_line_length, ...) are read
# from .editorconfig files; this file selects rules and files.`
}
