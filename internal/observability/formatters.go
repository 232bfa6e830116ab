// Package observability provides the structured logger and the formatted
// output used by the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/elevate/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed, human-readable summaries.
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, then a count of the rest.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintDocument outputs a summary of a student document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	name := doc.FullName
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(&sb, "Name:      %s\n", name)
	if doc.Email != "" {
		fmt.Fprintf(&sb, "Email:     %s\n", doc.Email)
	}
	fmt.Fprintf(&sb, "Resume:    %s\n", doc.ResumeTemplate)
	fmt.Fprintf(&sb, "Portfolio: %s (%s, %s)\n", doc.PortfolioTemplate, doc.AccentColor, doc.FontStyle)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Experience: %d  Projects: %d  Education: %d\n",
		len(doc.Experience), len(doc.Projects), len(doc.Education))

	if titles := doc.ProjectTitles(); len(titles) > 0 {
		sb.WriteString("\nProjects:\n")
		writeList(&sb, titles, maxItemsToShow)
	}
	if len(doc.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		writeList(&sb, doc.Skills, maxItemsToShow)
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs the skills suggested by a gap analysis.
func (p *Printer) PrintSkillGaps(goal string, gaps []types.SkillGap) {
	if len(gaps) == 0 {
		return
	}

	var sb strings.Builder
	if goal != "" {
		fmt.Fprintf(&sb, "Goal: %s\n\n", goal)
	}
	for i, g := range gaps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, g.Skill)
		if g.Reason != "" {
			fmt.Fprintf(&sb, "   %s\n", g.Reason)
		}
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs a job match score and its suggestions.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100 (%s)\n", result.Score, result.Band())
	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		writeList(&sb, result.Suggestions, maxItemsToShow)
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintText outputs generated prose such as a summary or cover letter.
// Long lines are truncated to fit the box.
func (p *Printer) PrintText(title, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.printBox(strings.ToUpper(title), strings.TrimSpace(text))
}

// PrintValidation outputs document validation problems.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENT IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d problems:\n\n", len(problems))
	for _, problem := range problems {
		fmt.Fprintf(&sb, "⚠ %s\n", problem)
	}

	p.printBox("VALIDATION PROBLEMS", strings.TrimSuffix(sb.String(), "\n"))
}
