package extract

import (
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/profile-agent/internal/types"
)

// ParseHTML parses an HTML document and extracts the candidate profile from it.
// The only error is a failure to parse the HTML at all; missing data degrades to
// empty fields.
func ParseHTML(r io.Reader, pageURL string, sel Selectors) (types.CandidateProfile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.NewCandidateProfile(pageURL), &ParseError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}
	return ParseProfile(doc, pageURL, sel), nil
}

// ParseProfile extracts a candidate profile from a rendered profile page.
//
// Every call re-reads the tree from scratch and keeps no state, so it is safe to
// call repeatedly or concurrently; calling it twice on an unchanged tree returns
// equal profiles. Each field group is extracted independently: a section that is
// missing or malformed leaves only its own fields empty.
func ParseProfile(doc *goquery.Document, pageURL string, sel Selectors) types.CandidateProfile {
	profile := types.NewCandidateProfile(pageURL)
	if doc == nil {
		return profile
	}
	root := doc.Selection

	safely("name", func() {
		first, last := SplitName(firstText(root, sel.Name))
		if first != "" {
			profile.FirstName = first
		}
		profile.LastName = last
	})
	safely("headline", func() {
		profile.Headline = firstText(root, sel.Headline)
	})
	safely("location", func() {
		profile.Location = firstText(root, sel.Location)
	})
	safely("picture", func() {
		if src := firstAttr(root, sel.Picture, "src"); src != "" {
			resolved := resolveURL(pageURL, src)
			profile.ProfilePictureURL = &resolved
		}
	})

	safely("experience", func() {
		for _, item := range sectionItems(root, sel.Keywords.Experience, sel) {
			if exp, ok := ParseExperience(VisualLines(item, sel)); ok {
				profile.Experiences = append(profile.Experiences, exp)
			}
		}
	})
	safely("education", func() {
		for _, item := range sectionItems(root, sel.Keywords.Education, sel) {
			if edu, ok := ParseEducation(VisualLines(item, sel)); ok {
				profile.Educations = append(profile.Educations, edu)
			}
		}
	})
	safely("skills", func() {
		for _, item := range sectionItems(root, sel.Keywords.Skills, sel) {
			if skill, ok := ParseSkill(VisualLines(item, sel)); ok {
				profile.Skills = append(profile.Skills, skill)
			}
		}
	})
	safely("languages", func() {
		for _, item := range sectionItems(root, sel.Keywords.Languages, sel) {
			if lang, ok := ParseLanguage(VisualLines(item, sel)); ok {
				profile.Languages = append(profile.Languages, lang)
			}
		}
	})

	profile.CurrentCompany = CurrentCompany(profile.Experiences)

	return profile
}

func sectionItems(root *goquery.Selection, keyword string, sel Selectors) []*goquery.Selection {
	return ListItems(FindSection(root, keyword, sel), sel)
}

// firstText returns the trimmed text of the first match of the first selector
// that yields non-empty text.
func firstText(root *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if selector == "" {
			continue
		}
		if text := strings.TrimSpace(root.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func firstAttr(root *goquery.Selection, selectors []string, attr string) string {
	for _, selector := range selectors {
		if selector == "" {
			continue
		}
		if val, ok := root.Find(selector).First().Attr(attr); ok {
			if val = strings.TrimSpace(val); val != "" {
				return val
			}
		}
	}
	return ""
}

// resolveURL makes ref absolute against the page address, the way a browser
// reports img.src. Unparseable input is returned unchanged.
func resolveURL(pageURL, ref string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}

// safely runs one extraction step, containing any panic to that step.
func safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EXTRACT] %s step failed, leaving it empty: %v", step, r)
		}
	}()
	fn()
}
