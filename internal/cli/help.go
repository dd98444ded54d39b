package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/kotlint/internal/ui/pretty"
)

// HelpFormatter renders cobra help and usage output with the same lipgloss
// styles the reporters use.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}` + usageTemplate

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them from the root.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading":   h.styles.SummaryTitle.Render,
		"command":   h.styles.Bold.Render,
		"dim":       h.styles.Dim.Render,
		"flags":     h.flagUsages,
		"rpad":      rpad,
		"trimRight": func(s string) string { return strings.TrimRight(s, " \t\n") },
	}

	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return err
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages styles the flag names in pflag's usage block, leaving the
// column layout pflag computed untouched.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		name, rest, found := strings.Cut(trimmed, "   ")
		if !found {
			continue
		}
		lines[i] = indent + h.styles.RuleID.Render(name) + "   " + rest
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
