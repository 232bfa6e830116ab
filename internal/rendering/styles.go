package rendering

import (
	"strings"

	"github.com/jonathan/elevate/internal/types"
)

// HeaderStyle is how a resume masthead is set off from the body.
type HeaderStyle string

// Resume header styles.
const (
	HeaderRule     HeaderStyle = "rule"     // heavy bottom rule
	HeaderBanner   HeaderStyle = "banner"   // full-bleed dark band
	HeaderCentered HeaderStyle = "centered" // centred, thin rule, italic contacts
	HeaderBar      HeaderStyle = "bar"      // thick left bar
	HeaderBoxed    HeaderStyle = "boxed"    // bordered box
)

// HeadingStyle is how section headings are drawn.
type HeadingStyle string

// Section heading styles.
const (
	HeadingMuted    HeadingStyle = "muted"
	HeadingStrong   HeadingStyle = "strong"
	HeadingInverted HeadingStyle = "inverted"
)

// ResumeStyle is the layout rule-set of one resume variant.
type ResumeStyle struct {
	Variant  types.ResumeTemplate
	Font     types.FontStyle
	Header   HeaderStyle
	Headings HeadingStyle
	// Columns is 1 for a single stacked column, 2 for the main/side split.
	Columns int
	// Compact shrinks the base type size.
	Compact bool
	// EntryRule draws a left rule beside each experience and project entry.
	EntryRule bool
	// OutlineChips draws skills as outlined rather than filled chips.
	OutlineChips bool
}

var resumeStyles = map[types.ResumeTemplate]ResumeStyle{
	types.ResumeModern:    {Font: types.FontSans, Header: HeaderRule, Headings: HeadingMuted, Columns: 2},
	types.ResumeClassic:   {Font: types.FontSerif, Header: HeaderRule, Headings: HeadingMuted, Columns: 2},
	types.ResumeMinimal:   {Font: types.FontSans, Header: HeaderRule, Headings: HeadingMuted, Columns: 1},
	types.ResumeBold:      {Font: types.FontSans, Header: HeaderBanner, Headings: HeadingStrong, Columns: 2},
	types.ResumeExecutive: {Font: types.FontSerif, Header: HeaderCentered, Headings: HeadingMuted, Columns: 1},
	types.ResumeCreative:  {Font: types.FontSans, Header: HeaderBar, Headings: HeadingMuted, Columns: 2},
	types.ResumeTech: {
		Font: types.FontMono, Header: HeaderBoxed, Headings: HeadingInverted, Columns: 2,
		Compact: true, EntryRule: true, OutlineChips: true,
	},
}

// ResumeStyleFor returns the rule-set of a resume variant.
func ResumeStyleFor(variant types.ResumeTemplate) (ResumeStyle, bool) {
	s, ok := resumeStyles[variant]
	s.Variant = variant
	return s, ok
}

// Classes returns the CSS classes that apply the style.
func (s ResumeStyle) Classes() string {
	classes := []string{
		"font-" + string(s.Font),
		"header-" + string(s.Header),
		"headings-" + string(s.Headings),
	}
	if s.Columns == 1 {
		classes = append(classes, "cols-1")
	} else {
		classes = append(classes, "cols-2")
	}
	if s.Compact {
		classes = append(classes, "compact")
	}
	if s.EntryRule {
		classes = append(classes, "entry-rule")
	}
	if s.OutlineChips {
		classes = append(classes, "chips-outline")
	}
	return strings.Join(classes, " ")
}

// HeroStyle is the layout of a portfolio's opening section.
type HeroStyle string

// Portfolio hero styles.
const (
	HeroCentered  HeroStyle = "centered"  // avatar initial, centred name and summary
	HeroPlain     HeroStyle = "plain"     // left-aligned, no avatar
	HeroEditorial HeroStyle = "editorial" // oversized split name
	HeroSidebar   HeroStyle = "sidebar"   // left-aligned beside a fixed nav
)

// PortfolioStyle is the layout rule-set of one portfolio variant.
type PortfolioStyle struct {
	Variant types.PortfolioTemplate
	Hero    HeroStyle
	Dark    bool
	// Narrow constrains the page to a single reading column.
	Narrow bool
	// Sidebar adds a fixed navigation column.
	Sidebar bool
	// ProjectColumns is the project grid width on wide screens.
	ProjectColumns int
	// FeatureFirst makes the first project card span two columns and rows.
	FeatureFirst bool
	// SplitSections lays experience beside skills and education.
	SplitSections bool
	// LargeHeadings uses oversized uppercase section headings.
	LargeHeadings bool
}

var portfolioStyles = map[types.PortfolioTemplate]PortfolioStyle{
	types.PortfolioGrid:      {Hero: HeroCentered, ProjectColumns: 2, SplitSections: true},
	types.PortfolioBento:     {Hero: HeroCentered, ProjectColumns: 3, FeatureFirst: true, SplitSections: true},
	types.PortfolioMinimal:   {Hero: HeroPlain, Narrow: true, ProjectColumns: 1},
	types.PortfolioEditorial: {Hero: HeroEditorial, ProjectColumns: 3, SplitSections: true, LargeHeadings: true},
	types.PortfolioDark:      {Hero: HeroCentered, Dark: true, ProjectColumns: 2, SplitSections: true},
	types.PortfolioSidebar:   {Hero: HeroSidebar, Sidebar: true, ProjectColumns: 2, SplitSections: true},
}

// PortfolioStyleFor returns the rule-set of a portfolio variant.
func PortfolioStyleFor(variant types.PortfolioTemplate) (PortfolioStyle, bool) {
	s, ok := portfolioStyles[variant]
	s.Variant = variant
	return s, ok
}

// Classes returns the CSS classes that apply the style.
func (s PortfolioStyle) Classes() string {
	classes := []string{"hero-" + string(s.Hero)}
	if s.Dark {
		classes = append(classes, "dark")
	}
	if s.Narrow {
		classes = append(classes, "narrow")
	}
	if s.Sidebar {
		classes = append(classes, "with-sidebar")
	}
	if s.SplitSections {
		classes = append(classes, "split")
	}
	if s.LargeHeadings {
		classes = append(classes, "large-headings")
	}
	if s.FeatureFirst {
		classes = append(classes, "feature-first")
	}
	return strings.Join(classes, " ")
}

// fontStacks maps font styles to CSS font-family stacks.
var fontStacks = map[types.FontStyle]string{
	types.FontSans:    `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
	types.FontSerif:   `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`,
	types.FontMono:    `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", monospace`,
	types.FontDisplay: `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
}
