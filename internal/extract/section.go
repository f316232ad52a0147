package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
)

// FindSection returns the first section container whose heading contains keyword,
// compared under Unicode case folding. Headers are matched by substring so suffixed or
// counted headers such as "Education (3)" still match. When no section matches,
// or keyword is blank, it returns an empty selection (Length() == 0).
func FindSection(root *goquery.Selection, keyword string, sel Selectors) *goquery.Selection {
	if root == nil {
		return &goquery.Selection{}
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return root.Slice(0, 0)
	}

	found := root.Slice(0, 0)
	root.Find(sel.Section).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		header := section.Find(sel.SectionHeading).First()
		if header.Length() == 0 {
			return true
		}
		text := strings.TrimSpace(header.Text())
		if text != "" && containsFold(text, keyword) {
			found = section
			return false
		}
		return true
	})

	return found
}

// ListItems returns the entry rows of a section in document order.
// A nil or empty section yields an empty slice.
func ListItems(section *goquery.Selection, sel Selectors) []*goquery.Selection {
	items := make([]*goquery.Selection, 0)
	if section == nil || section.Length() == 0 {
		return items
	}

	section.Find(sel.ListItem).Each(func(_ int, item *goquery.Selection) {
		items = append(items, item)
	})
	return items
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	// Casers keep state, so each call gets its own.
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
