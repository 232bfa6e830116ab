//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var documentValidator *validator.Validate

func init() {
	documentValidator = validator.New()

	_ = documentValidator.RegisterValidation("resume_template", func(fl validator.FieldLevel) bool {
		return ResumeTemplate(fl.Field().String()).Valid()
	})
	_ = documentValidator.RegisterValidation("portfolio_template", func(fl validator.FieldLevel) bool {
		return PortfolioTemplate(fl.Field().String()).Valid()
	})
	_ = documentValidator.RegisterValidation("font_style", func(fl validator.FieldLevel) bool {
		return FontStyle(fl.Field().String()).Valid()
	})
	_ = documentValidator.RegisterValidation("accent_color", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	})
	_ = documentValidator.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate checks the document invariants: template selectors and font style
// are known values, the accent colour is a hex colour, list ids are present and
// unique within their list, and skills contain no blank entries.
func (d Document) Validate() error {
	return documentValidator.Struct(d)
}

// IsHexColor reports whether s is a #rgb or #rrggbb colour.
func IsHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	return documentValidator.Var(s, "hexcolor") == nil
}

// Normalize returns a copy of d with missing or unknown presentation settings
// replaced by defaults, nil lists made empty, and skills trimmed with blanks
// dropped. It is applied to documents decoded from outside the process.
func Normalize(d Document) Document {
	if !d.ResumeTemplate.Valid() {
		d.ResumeTemplate = DefaultResumeTemplate
	}
	if !d.PortfolioTemplate.Valid() {
		d.PortfolioTemplate = DefaultPortfolioTemplate
	}
	if !d.FontStyle.Valid() {
		d.FontStyle = DefaultFontStyle
	}
	if !IsHexColor(d.AccentColor) {
		d.AccentColor = DefaultAccentColor
	}

	d.Skills = NormalizeSkills(d.Skills)
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	return d
}

// NormalizeSkills trims every skill and drops blank entries. Duplicates are kept.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseSkills splits comma-separated editor input into normalised skills.
func ParseSkills(input string) []string {
	return NormalizeSkills(strings.Split(input, ","))
}

// ParseTechnologies splits comma-separated editor input into technology tags.
// Tags are trimmed but blank entries are kept so the editor can round-trip a
// trailing comma while the user is still typing.
func ParseTechnologies(input string) []string {
	parts := strings.Split(input, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinList formats a tag or skill list for a comma-separated editor field.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
