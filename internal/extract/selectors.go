package extract

// SectionKeywords holds the header keywords used to locate each named section.
type SectionKeywords struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Languages  string `json:"languages"`
}

// Selectors is the declarative table of every selector the extractor depends on.
// The host markup is obfuscated and changes often, so adapting to it should only
// require editing this table (see config.LoadSelectors).
type Selectors struct {
	// Section matches the top-level section containers.
	Section string `json:"section"`
	// SectionHeading matches heading-like descendants of a section; the first match is used.
	SectionHeading string `json:"section_heading"`
	// ListItem matches entry rows inside a section.
	ListItem string `json:"list_item"`
	// VisualText matches the authoritative visible copy of each text fragment.
	VisualText string `json:"visual_text"`
	// FallbackLine matches fixed-class text carriers, read only when VisualText finds nothing.
	FallbackLine string `json:"fallback_line"`
	// ScreenReaderOnly matches assistive-technology duplicates stripped from fallback lines.
	ScreenReaderOnly string `json:"screen_reader_only"`

	// Name, Headline, Location and Picture are tried in order; the first non-empty hit wins.
	Name     []string `json:"name"`
	Headline []string `json:"headline"`
	Location []string `json:"location"`
	Picture  []string `json:"picture"`

	Keywords SectionKeywords `json:"keywords"`
}

// DefaultSelectors returns the selector table for the current profile page markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Section:          "section",
		SectionHeading:   `div[id*="header"] h1, h2, span, h1`,
		ListItem:         "li.artdeco-list__item, li.pvs-list__paged-list-item",
		VisualText:       `span[aria-hidden="true"]`,
		FallbackLine:     ".t-bold, .t-normal, .t-black--light",
		ScreenReaderOnly: ".visually-hidden",
		Name: []string{
			"h1.text-heading-xlarge, h1.t-24",
			".pv-text-details__left-panel h1",
		},
		Headline: []string{
			".text-body-medium.break-words",
		},
		Location: []string{
			".text-body-small.inline.t-black--light.break-words",
		},
		Picture: []string{
			"img.pv-top-card-profile-picture__image--show",
			".pv-top-card-profile-picture__image",
		},
		Keywords: SectionKeywords{
			Experience: "Experience",
			Education:  "Education",
			Skills:     "Skills",
			Languages:  "Languages",
		},
	}
}
