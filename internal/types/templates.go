//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// ResumeTemplate selects a resume layout variant.
type ResumeTemplate string

// Resume layout variants.
const (
	ResumeModern    ResumeTemplate = "modern"
	ResumeClassic   ResumeTemplate = "classic"
	ResumeMinimal   ResumeTemplate = "minimal"
	ResumeBold      ResumeTemplate = "bold"
	ResumeExecutive ResumeTemplate = "executive"
	ResumeCreative  ResumeTemplate = "creative"
	ResumeTech      ResumeTemplate = "tech"
)

// DefaultResumeTemplate is applied to new documents.
const DefaultResumeTemplate = ResumeModern

// ResumeTemplates lists every resume variant in picker order.
var ResumeTemplates = []ResumeTemplate{
	ResumeModern, ResumeClassic, ResumeMinimal, ResumeBold,
	ResumeExecutive, ResumeCreative, ResumeTech,
}

// PortfolioTemplate selects a portfolio layout variant.
type PortfolioTemplate string

// Portfolio layout variants.
const (
	PortfolioGrid      PortfolioTemplate = "grid"
	PortfolioBento     PortfolioTemplate = "bento"
	PortfolioMinimal   PortfolioTemplate = "minimal"
	PortfolioEditorial PortfolioTemplate = "editorial"
	PortfolioDark      PortfolioTemplate = "dark"
	PortfolioSidebar   PortfolioTemplate = "sidebar"
)

// DefaultPortfolioTemplate is applied to new documents.
const DefaultPortfolioTemplate = PortfolioGrid

// PortfolioTemplates lists every portfolio variant in picker order.
var PortfolioTemplates = []PortfolioTemplate{
	PortfolioGrid, PortfolioBento, PortfolioMinimal,
	PortfolioEditorial, PortfolioDark, PortfolioSidebar,
}

// FontStyle selects the portfolio typeface family.
type FontStyle string

// Font styles.
const (
	FontSans    FontStyle = "sans"
	FontSerif   FontStyle = "serif"
	FontMono    FontStyle = "mono"
	FontDisplay FontStyle = "display"
)

// DefaultFontStyle is applied to new documents.
const DefaultFontStyle = FontSans

// FontStyles lists every font style in picker order.
var FontStyles = []FontStyle{FontSans, FontSerif, FontMono, FontDisplay}

// Valid reports whether t is a known resume variant.
func (t ResumeTemplate) Valid() bool {
	for _, v := range ResumeTemplates {
		if v == t {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known portfolio variant.
func (t PortfolioTemplate) Valid() bool {
	for _, v := range PortfolioTemplates {
		if v == t {
			return true
		}
	}
	return false
}

// Valid reports whether f is a known font style.
func (f FontStyle) Valid() bool {
	for _, v := range FontStyles {
		if v == f {
			return true
		}
	}
	return false
}

// ParseResumeTemplate converts user input into a resume variant.
func ParseResumeTemplate(s string) (ResumeTemplate, error) {
	t := ResumeTemplate(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown resume template %q", s)
	}
	return t, nil
}

// ParsePortfolioTemplate converts user input into a portfolio variant.
func ParsePortfolioTemplate(s string) (PortfolioTemplate, error) {
	t := PortfolioTemplate(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown portfolio template %q", s)
	}
	return t, nil
}

// ParseFontStyle converts user input into a font style.
func ParseFontStyle(s string) (FontStyle, error) {
	f := FontStyle(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown font style %q", s)
	}
	return f, nil
}
