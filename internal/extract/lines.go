package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisualLines returns the unique, trimmed, human-visible text fragments of an entry.
//
// The host page renders each string twice: once for screen readers and once
// marked aria-hidden for sighted users. Only the aria-hidden copy is read. When an
// entry carries no such markers, the fixed-class carriers are read instead with the
// screen-reader copies stripped.
func VisualLines(entry *goquery.Selection, sel Selectors) []string {
	if entry == nil {
		return []string{}
	}

	lines := collectLines(entry.Find(sel.VisualText), "")
	if len(lines) == 0 && sel.FallbackLine != "" {
		lines = collectLines(entry.Find(sel.FallbackLine), sel.ScreenReaderOnly)
	}
	return dedupe(lines)
}

func collectLines(nodes *goquery.Selection, strip string) []string {
	lines := make([]string, 0, nodes.Length())
	nodes.Each(func(_ int, node *goquery.Selection) {
		if strip != "" {
			node = node.Clone()
			node.Find(strip).Remove()
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines
}

// dedupe removes repeated strings, case-sensitively, keeping first-seen order.
func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	unique := make([]string, 0, len(lines))
	for _, line := range lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		unique = append(unique, line)
	}
	return unique
}
