package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/kotlint/pkg/analysis"
	"github.com/yaklabco/kotlint/pkg/config"
)

// FormatViolation renders one violation in the plain reporter layout:
//
//	path:line:col: message (rule-id)
//
// An entry without a path prints only "line:col:", for output grouped under
// a file header. Corrected violations get a trailing marker. With
// showContext, the source line follows with a caret under the column.
func (s *Styles) FormatViolation(v analysis.ViolationEntry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	var location string
	if v.FilePath != "" {
		location = s.FilePath.Render(v.FilePath) + s.Location.Render(":")
	}
	location += s.Location.Render(fmt.Sprintf("%d:%d:", v.Line, v.Column))
	message := s.severityStyle(config.Severity(v.Severity)).Render(v.Message)

	builder.WriteString(location + " " + message + " " + s.RuleID.Render("("+v.RuleID+")"))
	if v.Corrected {
		builder.WriteString(" " + s.Corrected.Render("(corrected)"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.Column))
	}

	return builder.String()
}

// severityStyle picks the message style for a severity. Errors keep the
// plain message style so a wall of violations stays readable.
func (s *Styles) severityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Message
	}
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
// Tabs before the column are kept so the caret lines up.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "    "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		var pad strings.Builder
		for i, r := range []rune(line) {
			if i >= column-1 {
				break
			}
			if r == '\t' {
				pad.WriteRune('\t')
			} else {
				pad.WriteRune(' ')
			}
		}
		if n := column - 1 - len([]rune(line)); n > 0 {
			pad.WriteString(strings.Repeat(" ", n))
		}
		builder.WriteString(indent + pad.String() + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
