package extract

import (
	"regexp"
	"strings"

	"github.com/jonathan/profile-agent/internal/types"
)

// yearPattern matches any four-digit run, e.g. "2019" in "Jan 2019 - Present".
var yearPattern = regexp.MustCompile(`\d{4}`)

// durationMarkers are substrings that mark a relative duration such as "3 yrs 2 mos".
var durationMarkers = []string{"Present", " mo", " yr"}

// IsDateLike reports whether a line looks like an employment date range or duration.
func IsDateLike(line string) bool {
	if yearPattern.MatchString(line) {
		return true
	}
	for _, marker := range durationMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// ParseExperience maps the visual lines of one experience row onto its fields.
// Typical order is title, company, dates, location. It returns false when no
// title was recovered.
func ParseExperience(lines []string) (types.Experience, bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return types.Experience{}, false
	}

	exp := types.Experience{Title: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		exp.Company = lines[1]
	}

	dateIndex := -1
	for i := 2; i < len(lines); i++ {
		if IsDateLike(lines[i]) {
			dateIndex = i
			break
		}
	}

	switch {
	case dateIndex >= 0:
		exp.Dates = lines[dateIndex]
		if dateIndex+1 < len(lines) {
			exp.Location = lines[dateIndex+1]
		}
	case len(lines) > 2:
		// Low confidence: the third line is usually dates or dates mixed with location.
		exp.Dates = lines[2]
	}

	return exp, true
}

// ParseEducation maps the visual lines of one education row onto its fields.
// It returns false when no school was recovered.
func ParseEducation(lines []string) (types.Education, bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return types.Education{}, false
	}

	edu := types.Education{School: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		edu.Degree = lines[1]
	}
	for i := 1; i < len(lines); i++ {
		if yearPattern.MatchString(lines[i]) {
			edu.Dates = lines[i]
			break
		}
	}

	return edu, true
}

// ParseSkill returns the skill name, the first visual line of the row.
func ParseSkill(lines []string) (string, bool) {
	if len(lines) == 0 {
		return "", false
	}
	skill := strings.TrimSpace(lines[0])
	return skill, skill != ""
}

// ParseLanguage formats a language row as "Name (Proficiency)", or just "Name"
// when the row carries no proficiency line.
func ParseLanguage(lines []string) (string, bool) {
	if len(lines) == 0 {
		return "", false
	}
	name := strings.TrimSpace(lines[0])
	if name == "" {
		return "", false
	}
	if len(lines) > 1 {
		if proficiency := strings.TrimSpace(lines[1]); proficiency != "" {
			return name + " (" + proficiency + ")", true
		}
	}
	return name, true
}

// CurrentCompany picks the company of the first ongoing experience, falling back
// to the first experience. Employment-type suffixes ("Acme · Full-time") are cut.
func CurrentCompany(experiences []types.Experience) string {
	if len(experiences) == 0 {
		return ""
	}

	current := experiences[0]
	for _, exp := range experiences {
		if containsFold(exp.Dates, "present") {
			current = exp
			break
		}
	}

	company, _, _ := strings.Cut(current.Company, "·")
	return strings.TrimSpace(company)
}

// SplitName splits a full name on the first whitespace run.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
