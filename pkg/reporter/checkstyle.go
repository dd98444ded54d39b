package reporter

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/yaklabco/kotlint/pkg/analysis"
)

// checkstyleVersion is the format version CI tools expect in the root element.
const checkstyleVersion = "8.0"

// parseErrorSource is the checkstyle source for files that failed to parse.
const parseErrorSource = "kotlint:parse"

type checkstyleOutput struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckstyleRenderer writes violations as checkstyle XML, one <file>
// element per file with unresolved violations or a processing failure.
type CheckstyleRenderer struct {
	opts Options
}

// NewCheckstyleRenderer creates a new checkstyle renderer.
func NewCheckstyleRenderer(opts Options) *CheckstyleRenderer {
	return &CheckstyleRenderer{opts: opts}
}

// Render implements Renderer.
func (r *CheckstyleRenderer) Render(_ context.Context, report *analysis.Report) error {
	output := checkstyleOutput{Version: checkstyleVersion}
	index := make(map[string]int)

	fileFor := func(path string) *checkstyleFile {
		i, ok := index[path]
		if !ok {
			i = len(output.Files)
			index[path] = i
			output.Files = append(output.Files, checkstyleFile{Name: path})
		}
		return &output.Files[i]
	}

	for _, v := range report.Violations {
		if v.Corrected {
			continue
		}
		f := fileFor(v.FilePath)
		f.Errors = append(f.Errors, checkstyleError{
			Line:     v.Line,
			Column:   v.Column,
			Severity: v.Severity,
			Message:  v.Message,
			Source:   v.RuleID,
		})
	}
	for _, e := range report.Errors {
		f := fileFor(e.FilePath)
		f.Errors = append(f.Errors, checkstyleError{
			Line:     1,
			Severity: "error",
			Message:  e.Message,
			Source:   parseErrorSource,
		})
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if _, err := bw.WriteString(xml.Header); err != nil {
		return fmt.Errorf("write checkstyle: %w", err)
	}

	encoder := xml.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.Indent("", "    ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode checkstyle: %w", err)
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return fmt.Errorf("write checkstyle: %w", err)
	}
	return bw.Flush()
}
