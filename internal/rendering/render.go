package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// PlaceholderName is shown in place of an empty full name.
const PlaceholderName = "Your Name"

// PlaceholderTagline is shown on a portfolio whose summary is empty.
const PlaceholderTagline = "Aspiring professional looking to make an impact through innovative projects and dedicated work."

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

// templates parses the embedded template set once.
func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("elevate").Funcs(template.FuncMap{
			"dates": dateRange,
		}).ParseFS(templateFiles, "templates/*.tmpl")
		if parseErr != nil {
			parseErr = &TemplateError{Message: "failed to parse templates", Cause: parseErr}
		}
	})
	return parsed, parseErr
}

// contact is one line of contact information.
type contact struct {
	Kind string
	Text string
	Href string
}

// link is an outbound project link.
type link struct {
	Kind  string
	Label string
	Href  string
}

// iconView is a resolved project icon, ready for the "icon" template.
type iconView struct {
	Kind string
	Name string
	Path string
	Src  template.URL
	Text string
}

type projectView struct {
	types.Project
	IconView iconView
	TagList  []string
	Links    []link
}

type resumeView struct {
	Style      ResumeStyle
	FontStack  template.CSS
	Name       string
	Contacts   []contact
	Summary    string
	Experience []types.Experience
	Projects   []projectView
	Education  []types.Education
	Skills     []string
}

type portfolioView struct {
	Style      PortfolioStyle
	Font       types.FontStyle
	FontStack  template.CSS
	Accent     template.CSS
	Name       string
	FullName   string
	FirstName  string
	RestName   string
	Initial    string
	Tagline    string
	Contacts   []contact
	Projects   []projectView
	Experience []types.Experience
	Education  []types.Education
	Skills     []string
}

// RenderResume renders doc as a print-ready HTML page in the given resume variant.
// The document is only read; rendering the same input twice yields identical output.
func RenderResume(doc types.Document, variant types.ResumeTemplate) (string, error) {
	style, ok := ResumeStyleFor(variant)
	if !ok {
		return "", &RenderError{Message: fmt.Sprintf("unknown resume template %q", variant)}
	}

	view := resumeView{
		Style:      style,
		FontStack:  template.CSS(fontStacks[style.Font]),
		Name:       displayName(doc.FullName),
		Contacts:   contacts(doc),
		Summary:    strings.TrimSpace(doc.Summary),
		Experience: doc.Experience,
		Projects:   projectViews(doc.Projects),
		Education:  doc.Education,
		Skills:     nonBlank(doc.Skills),
	}
	return execute("resume", view)
}

// RenderPortfolio renders doc as a single-page portfolio site in the given
// variant, with accent and font applied. An invalid accent or font falls back
// to the default.
func RenderPortfolio(doc types.Document, variant types.PortfolioTemplate, accent string, font types.FontStyle) (string, error) {
	style, ok := PortfolioStyleFor(variant)
	if !ok {
		return "", &RenderError{Message: fmt.Sprintf("unknown portfolio template %q", variant)}
	}
	if !types.IsHexColor(accent) {
		accent = types.DefaultAccentColor
	}
	if !font.Valid() {
		font = types.DefaultFontStyle
	}

	name := strings.TrimSpace(doc.FullName)
	first, rest := splitName(displayName(name))
	tagline := strings.TrimSpace(doc.Summary)
	if tagline == "" {
		tagline = PlaceholderTagline
	}

	view := portfolioView{
		Style:      style,
		Font:       font,
		FontStack:  template.CSS(fontStacks[font]),
		Accent:     template.CSS(accent),
		Name:       displayName(name),
		FullName:   name,
		FirstName:  first,
		RestName:   rest,
		Initial:    initial(name),
		Tagline:    tagline,
		Contacts:   contacts(doc),
		Projects:   projectViews(doc.Projects),
		Experience: doc.Experience,
		Education:  doc.Education,
		Skills:     nonBlank(doc.Skills),
	}
	return execute("portfolio", view)
}

// RenderCoverLetter renders cover letter text as a printable page. Line
// breaks are kept as written.
func RenderCoverLetter(text string) (string, error) {
	return execute("cover-letter", struct{ Text string }{Text: strings.TrimSpace(text)})
}

func execute(name string, data any) (string, error) {
	tmpl, err := templates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to execute %s template", name), Cause: err}
	}
	return buf.String(), nil
}

func displayName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return PlaceholderName
}

func splitName(name string) (string, string) {
	first, rest, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(rest)
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "Y"
	}
	return string(unicode.ToUpper(r))
}

func contacts(doc types.Document) []contact {
	var out []contact
	add := func(kind, text, href string) {
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, contact{Kind: kind, Text: text, Href: href})
		}
	}
	add("email", doc.Email, "mailto:"+strings.TrimSpace(doc.Email))
	add("phone", doc.Phone, "")
	add("location", doc.Location, "")
	add("linkedin", doc.LinkedIn, strings.TrimSpace(doc.LinkedIn))
	add("github", doc.GitHub, strings.TrimSpace(doc.GitHub))
	add("website", doc.Website, strings.TrimSpace(doc.Website))
	return out
}

func projectViews(projects []types.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		var links []link
		addLink := func(kind, label, href string) {
			if href = strings.TrimSpace(href); href != "" {
				links = append(links, link{Kind: kind, Label: label, Href: href})
			}
		}
		addLink("github", "Source", p.GitHubLink)
		addLink("demo", "Live demo", p.Link)
		addLink("portfolio", "Case study", p.PortfolioLink)

		out = append(out, projectView{
			Project:  p,
			IconView: resolveIcon(p.Icon),
			TagList:  p.Tags(),
			Links:    links,
		})
	}
	return out
}

func resolveIcon(icon icons.Icon) iconView {
	icon = icon.OrDefault()
	switch icon.Kind {
	case icons.KindBuiltin:
		return iconView{Kind: "builtin", Name: icon.Value, Path: icons.Glyph(icon.Value)}
	case icons.KindImage:
		if icons.IsImageSource(icon.Value) {
			return iconView{Kind: "image", Src: template.URL(icon.Value)} //nolint:gosec // data:image or http(s) only
		}
		return iconView{Kind: "text", Text: icon.Value}
	default:
		return iconView{Kind: "text", Text: icon.Value}
	}
}

// dateRange formats a start and end date for display, omitting missing ends.
func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	default:
		return end
	}
}

func nonBlank(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
