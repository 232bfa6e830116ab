// Package types provides type definitions for structured data used throughout the elevate system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/jonathan/elevate/internal/icons"
)

// DefaultAccentColor is the emerald swatch applied to new documents.
const DefaultAccentColor = "#10b981"

// AccentPalette lists the swatches offered by the portfolio colour picker.
var AccentPalette = []string{
	"#10b981", // emerald
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#f43f5e", // rose
	"#f59e0b", // amber
	"#18181b", // zinc-900
}

// Document is the single in-memory representation of one student's
// application materials and presentation preferences.
// JSON names follow the saved-document format of the web editor.
type Document struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Summary  string `json:"summary"`

	Skills     []string     `json:"skills" validate:"dive,notblank"`
	Projects   []Project    `json:"projects" validate:"unique=ID,dive"`
	Experience []Experience `json:"experience" validate:"unique=ID,dive"`
	Education  []Education  `json:"education" validate:"unique=ID,dive"`

	ResumeTemplate    ResumeTemplate    `json:"resumeTemplate" validate:"resume_template"`
	PortfolioTemplate PortfolioTemplate `json:"portfolioTemplate" validate:"portfolio_template"`
	AccentColor       string            `json:"accentColor" validate:"accent_color"`
	FontStyle         FontStyle         `json:"fontStyle" validate:"font_style"`
}

// Project is a portfolio project entry.
type Project struct {
	ID            string     `json:"id" validate:"required"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Technologies  []string   `json:"technologies"`
	Link          string     `json:"link,omitempty"`
	GitHubLink    string     `json:"githubLink,omitempty"`
	PortfolioLink string     `json:"portfolioLink,omitempty"`
	Icon          icons.Icon `json:"icon"`
}

// Experience is a work experience entry.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is an education entry.
type Education struct {
	ID             string `json:"id" validate:"required"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

// Profile is the read-only contact and summary view of a document.
type Profile struct {
	FullName string
	Email    string
	Phone    string
	Location string
	Website  string
	LinkedIn string
	GitHub   string
	Summary  string
}

// NewDocument returns an empty document with every default applied.
func NewDocument() Document {
	return Document{
		Skills:            []string{},
		Projects:          []Project{},
		Experience:        []Experience{},
		Education:         []Education{},
		ResumeTemplate:    DefaultResumeTemplate,
		PortfolioTemplate: DefaultPortfolioTemplate,
		AccentColor:       DefaultAccentColor,
		FontStyle:         DefaultFontStyle,
	}
}

// Profile returns the document's profile fields.
func (d Document) Profile() Profile {
	return Profile{
		FullName: d.FullName,
		Email:    d.Email,
		Phone:    d.Phone,
		Location: d.Location,
		Website:  d.Website,
		LinkedIn: d.LinkedIn,
		GitHub:   d.GitHub,
		Summary:  d.Summary,
	}
}

// ProjectTitles returns the non-blank project titles in order.
func (d Document) ProjectTitles() []string {
	titles := make([]string, 0, len(d.Projects))
	for _, p := range d.Projects {
		if p.Title != "" {
			titles = append(titles, p.Title)
		}
	}
	return titles
}

// EducationSummaries returns "<degree> in <field>" for each education entry.
func (d Document) EducationSummaries() []string {
	out := make([]string, 0, len(d.Education))
	for _, e := range d.Education {
		out = append(out, e.Summary())
	}
	return out
}

// Summary formats the entry as "<degree> in <field>", dropping missing parts.
func (e Education) Summary() string {
	switch {
	case e.Degree != "" && e.Field != "":
		return e.Degree + " in " + e.Field
	case e.Degree != "":
		return e.Degree
	default:
		return e.Field
	}
}

// HasLinks reports whether the project carries any outbound link.
func (p Project) HasLinks() bool {
	return p.Link != "" || p.GitHubLink != "" || p.PortfolioLink != ""
}

// Tags returns the trimmed, non-blank technology tags of the project.
func (p Project) Tags() []string {
	tags := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
