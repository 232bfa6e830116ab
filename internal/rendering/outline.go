package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section is one headed section of a rendered page.
type Section struct {
	Heading string
	Items   int
}

// PageOutline summarises the structure of a rendered page.
type PageOutline struct {
	Title    string
	Name     string
	Sections []Section
}

// Outline parses a page produced by this package and lists its section
// headings with the number of entries under each.
func Outline(page string) (PageOutline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return PageOutline{}, &RenderError{Message: "failed to parse rendered page", Cause: err}
	}

	out := PageOutline{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Name:  strings.TrimSpace(doc.Find("h1").First().Text()),
	}
	doc.Find("h2.section").Each(func(_ int, h *goquery.Selection) {
		body := h.NextUntil("h2.section")
		items := body.Filter(".entry, .edu").Length() +
			body.Filter("ul").Children().Length() +
			body.Filter(".grid").Children().Length()
		out.Sections = append(out.Sections, Section{
			Heading: strings.TrimSpace(h.Text()),
			Items:   items,
		})
	})
	return out, nil
}

// Headings returns the section headings in page order.
func (o PageOutline) Headings() []string {
	out := make([]string, len(o.Sections))
	for i, s := range o.Sections {
		out[i] = s.Heading
	}
	return out
}
