// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of the acquired posting.
func (p *Printer) PrintJob(job types.JobFields) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	}
	sb.WriteString(fmt.Sprintf("Length:   %d chars", len(job.Description)))

	p.printBox("JOB POSTING", sb.String())
}

// PrintScore outputs the compatibility score and audit grade.
func (p *Printer) PrintScore(score int, audit *types.AuditReport) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Compatibility:  %d/100\n", score))
	if audit != nil {
		sb.WriteString(fmt.Sprintf("Resume grade:   %s\n", audit.Grade))
		for _, check := range audit.Checks {
			mark := "✗"
			if check.Passed {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, check.Name))
		}
	}

	p.printBox("SCORING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs the generative feedback summary.
func (p *Printer) PrintFeedback(report *types.FeedbackReport) {
	if report == nil || report.Err {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n\n", report.VerdictTitle))
	sb.WriteString(fmt.Sprintf("Overall:     %d\n", report.Score))
	sb.WriteString(fmt.Sprintf("Technical:   %d\n", report.ScoreTech))
	sb.WriteString(fmt.Sprintf("Experience:  %d\n", report.ScoreExperience))
	sb.WriteString(fmt.Sprintf("Context:     %d\n", report.ScoreContext))

	if len(report.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		count := min(len(report.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.MissingSkills[i]))
		}
		if len(report.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingSkills)-maxItemsToShow))
		}
	}

	p.printBox("AI FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRewrite outputs the rewrite suggestions.
func (p *Printer) PrintRewrite(report *types.RewriteReport) {
	if report == nil || report.Err || len(report.Experiences) == 0 {
		return
	}

	var sb strings.Builder

	for i, exp := range report.Experiences {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Before: %s\n", exp.Original))
		sb.WriteString(fmt.Sprintf("After:  %s\n", exp.Improved))
	}
	if report.SummaryTip != "" {
		sb.WriteString(fmt.Sprintf("\nTip: %s", report.SummaryTip))
	}

	p.printBox("REWRITE SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
