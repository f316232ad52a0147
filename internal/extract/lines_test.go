package extract

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func firstEntry(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	return newDoc(t, html).Find("li").First()
}

func TestVisualLines_SkipsScreenReaderCopies(t *testing.T) {
	entry := firstEntry(t, `<ul><li>
		<div class="t-bold"><span aria-hidden="true">Go</span><span class="visually-hidden">Go</span></div>
	</li></ul>`)

	assert.Equal(t, []string{"Go"}, VisualLines(entry, DefaultSelectors()))
}

func TestVisualLines_DedupesPreservingOrder(t *testing.T) {
	entry := firstEntry(t, `<ul><li>
		<span aria-hidden="true"> Engineer </span>
		<span aria-hidden="true">Acme</span>
		<span aria-hidden="true">Engineer</span>
		<span aria-hidden="true">engineer</span>
		<span aria-hidden="true">   </span>
		<span aria-hidden="true">2020 - Present</span>
	</li></ul>`)

	assert.Equal(t, []string{"Engineer", "Acme", "engineer", "2020 - Present"}, VisualLines(entry, DefaultSelectors()))
}

func TestVisualLines_FixedClassFallback(t *testing.T) {
	entry := firstEntry(t, `<ul><li>
		<div class="t-bold">Staff Engineer<span class="visually-hidden">Staff Engineer</span></div>
		<span class="t-14 t-normal">Globex</span>
		<span class="t-14 t-normal t-black--light">2022 - Present</span>
	</li></ul>`)

	assert.Equal(t, []string{"Staff Engineer", "Globex", "2022 - Present"}, VisualLines(entry, DefaultSelectors()))
}

func TestVisualLines_FallbackDisabled(t *testing.T) {
	entry := firstEntry(t, `<ul><li><div class="t-bold">Staff Engineer</div></li></ul>`)

	sel := DefaultSelectors()
	sel.FallbackLine = ""
	assert.Empty(t, VisualLines(entry, sel))
}

func TestVisualLines_NilAndEmpty(t *testing.T) {
	assert.Empty(t, VisualLines(nil, DefaultSelectors()))
	assert.Empty(t, VisualLines(firstEntry(t, `<ul><li></li></ul>`), DefaultSelectors()))
}

func TestVisualLines_FallbackLeavesDocumentIntact(t *testing.T) {
	doc := newDoc(t, `<ul><li><div class="t-bold">Lead<span class="visually-hidden">Lead</span></div></li></ul>`)
	entry := doc.Find("li").First()

	_ = VisualLines(entry, DefaultSelectors())
	assert.Equal(t, 1, doc.Find(".visually-hidden").Length())
}
