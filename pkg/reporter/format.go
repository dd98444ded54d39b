package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatPlain      Format = "plain"
	FormatJSON       Format = "json"
	FormatCheckstyle Format = "checkstyle"
	FormatSummary    Format = "summary"
	FormatDiff       Format = "diff"
)

// groupByFileOption is the reporter argument that groups plain output.
const groupByFileOption = "group_by_file"

// ParseFormat parses a format string, returning an error for unknown formats.
// A "plain?group_by_file" suffix selects grouped plain output; the second
// return value reports it.
func ParseFormat(formatStr string) (Format, bool, error) {
	name, args, _ := strings.Cut(formatStr, "?")
	grouped := false
	if args != "" {
		if name != string(FormatPlain) || args != groupByFileOption {
			return "", false, fmt.Errorf("unknown reporter option %q for %q", args, name)
		}
		grouped = true
	}

	switch name {
	case "plain", "":
		return FormatPlain, grouped, nil
	case "json":
		return FormatJSON, false, nil
	case "checkstyle":
		return FormatCheckstyle, false, nil
	case "summary":
		return FormatSummary, false, nil
	case "diff":
		return FormatDiff, false, nil
	default:
		return "", false, fmt.Errorf("unknown format %q; valid formats: plain, json, checkstyle, summary, diff", name)
	}
}

// FromConfig maps the configured output format onto a reporter format.
func FromConfig(f config.OutputFormat) Format {
	if f == "" {
		return FormatPlain
	}
	return Format(f)
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatPlain, FormatJSON, FormatCheckstyle, FormatSummary, FormatDiff:
		return true
	default:
		return false
	}
}
