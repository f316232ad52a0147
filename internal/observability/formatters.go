// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/profile-agent/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", heading, len(items)))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintCandidateProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	name := profile.FullName()
	if name == "" {
		name = profile.FirstName
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if profile.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline: %s\n", profile.Headline))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	if profile.CurrentCompany != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CurrentCompany))
	}
	sb.WriteString(fmt.Sprintf("URL:      %s\n", profile.LinkedInURL))
	sb.WriteString("\n")

	experiences := make([]string, 0, len(profile.Experiences))
	for _, exp := range profile.Experiences {
		line := exp.Title
		if exp.Company != "" {
			line += " @ " + exp.Company
		}
		if exp.Dates != "" {
			line += " (" + exp.Dates + ")"
		}
		experiences = append(experiences, line)
	}
	writeList(&sb, "Experience", experiences)

	educations := make([]string, 0, len(profile.Educations))
	for _, edu := range profile.Educations {
		line := edu.School
		if edu.Degree != "" {
			line += ", " + edu.Degree
		}
		educations = append(educations, line)
	}
	writeList(&sb, "Education", educations)

	writeList(&sb, "Skills", profile.Skills)
	writeList(&sb, "Languages", profile.Languages)

	p.printBox("EXTRACTED CANDIDATE PROFILE", sb.String())
}

// PrintCandidateStatus outputs the backend's view of a candidate.
func (p *Printer) PrintCandidateStatus(sourceURL string, status *types.CandidateStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", sourceURL))
	if !status.Exists {
		sb.WriteString("Not yet saved\n")
		p.printBox("CANDIDATE STATUS", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Candidate ID: %s\n", status.CandidateID))
	keys := make([]string, 0, len(status.Status))
	for k := range status.Status {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %v\n", k, status.Status[k]))
	}

	p.printBox("CANDIDATE STATUS", sb.String())
}

// PrintFailures outputs per-input failures from a batch run.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintFailures(failures map[string]error) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL INPUTS EXTRACTED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	inputs := make([]string, 0, len(failures))
	for input := range failures {
		inputs = append(inputs, input)
	}
	sort.Strings(inputs)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d failures:\n\n", len(failures)))
	for i, input := range inputs {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", input))
		sb.WriteString(fmt.Sprintf("  %s\n", failures[input].Error()))
		if i < len(inputs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXTRACTION FAILURES", sb.String())
}
