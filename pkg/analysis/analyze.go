// Package analysis turns a runner result into the per-file and per-rule
// views every reporter renders from.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity returns the severity string, defaulting to error.
func normalizeSeverity(sev config.Severity) string {
	if sev == "" {
		return string(config.SeverityError)
	}
	return string(sev)
}

// incrementSeverityCounts updates counts based on severity.
func incrementSeverityCounts(severity string, totals *Totals, fa *FileAnalysis, ra *RuleAnalysis) {
	switch config.Severity(severity) {
	case config.SeverityError:
		totals.Errors++
		fa.Errors++
		ra.Errors++
	case config.SeverityWarning:
		totals.Warnings++
		fa.Warnings++
		ra.Warnings++
	case config.SeverityInfo:
		totals.Infos++
		fa.Infos++
		ra.Infos++
	}
}

func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) getOrCreateRuleAnalysis(ruleID string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func newViolationEntry(path string, v *lint.Violation) ViolationEntry {
	return ViolationEntry{
		FilePath:  path,
		RuleID:    v.RuleID,
		Severity:  normalizeSeverity(v.Severity),
		Message:   v.Message,
		Line:      v.Line,
		Column:    v.Column,
		Corrected: v.Corrected,
	}
}

// buildByRule constructs the ByRule slice from accumulated data.
func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildByFile constructs the ByFile slice from accumulated data. Files
// whose violations were all corrected are kept so format runs can show them.
func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 && fa.Corrected == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the violations to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{FilePath: displayPath, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if file.Result.UnresolvedCount() > 0 {
			report.Totals.FilesWithIssues++
		}

		fa := ctx.getOrCreateFileAnalysis(displayPath)

		for i := range file.Result.Violations {
			v := &file.Result.Violations[i]
			ra := ctx.getOrCreateRuleAnalysis(v.RuleID)
			ctx.fileRules[displayPath][v.RuleID] = true
			ctx.ruleFiles[v.RuleID][displayPath] = true

			if v.Corrected {
				report.Totals.Corrected++
				fa.Corrected++
				ra.Corrected++
				if opts.IncludeViolations && opts.IncludeCorrected {
					report.Violations = append(report.Violations, newViolationEntry(displayPath, v))
				}
				continue
			}

			report.Totals.Issues++
			fa.Issues++
			ra.Issues++
			incrementSeverityCounts(normalizeSeverity(v.Severity), &report.Totals, fa, ra)

			if opts.IncludeViolations {
				report.Violations = append(report.Violations, newViolationEntry(displayPath, v))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

// compareBySeverity orders errors first, then warnings, then total issues.
func compareBySeverity(leftErrors, rightErrors, leftWarnings, rightWarnings, leftIssues, rightIssues int) int {
	result := cmp.Compare(rightErrors, leftErrors)
	if result == 0 {
		result = cmp.Compare(rightWarnings, leftWarnings)
	}
	if result == 0 {
		result = cmp.Compare(rightIssues, leftIssues)
	}
	return result
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.RuleID, right.RuleID)
		case SortBySeverity:
			result = compareBySeverity(left.Errors, right.Errors, left.Warnings, right.Warnings, left.Issues, right.Issues)
		default: // SortByCount
			result = cmp.Compare(left.Issues+left.Corrected, right.Issues+right.Corrected)
			if desc {
				result = -result
			}
		}
		if result == 0 {
			result = cmp.Compare(left.RuleID, right.RuleID)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortBySeverity:
			result = compareBySeverity(left.Errors, right.Errors, left.Warnings, right.Warnings, left.Issues, right.Issues)
		default: // SortByCount
			result = cmp.Compare(left.Issues+left.Corrected, right.Issues+right.Corrected)
			if desc {
				result = -result
			}
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
