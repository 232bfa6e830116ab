// Package document implements the pure transforms applied to a student document
// and the snapshot store that holds the current document for a session.
//
// Every transform takes a document value and returns a new one. Slices are
// copied before they change, so the input document (and any snapshot that
// shares its backing arrays) is never modified.
package document

import (
	"github.com/google/uuid"
	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/types"
)

// Patch is a partial update of root-level document fields. Nil fields are left untouched.
type Patch struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Summary  *string `json:"summary,omitempty"`

	Skills     *[]string           `json:"skills,omitempty"`
	Projects   *[]types.Project    `json:"projects,omitempty"`
	Experience *[]types.Experience `json:"experience,omitempty"`
	Education  *[]types.Education  `json:"education,omitempty"`

	ResumeTemplate    *types.ResumeTemplate    `json:"resumeTemplate,omitempty"`
	PortfolioTemplate *types.PortfolioTemplate `json:"portfolioTemplate,omitempty"`
	AccentColor       *string                  `json:"accentColor,omitempty"`
	FontStyle         *types.FontStyle         `json:"fontStyle,omitempty"`
}

// String returns a pointer to s, for building patches.
func String(s string) *string {
	return &s
}

// UpdateField shallow-merges the non-nil fields of p into doc.
// No validation is performed here.
func UpdateField(doc types.Document, p Patch) types.Document {
	setString(&doc.FullName, p.FullName)
	setString(&doc.Email, p.Email)
	setString(&doc.Phone, p.Phone)
	setString(&doc.Location, p.Location)
	setString(&doc.Website, p.Website)
	setString(&doc.LinkedIn, p.LinkedIn)
	setString(&doc.GitHub, p.GitHub)
	setString(&doc.Summary, p.Summary)
	setString(&doc.AccentColor, p.AccentColor)

	if p.Skills != nil {
		doc.Skills = clone(*p.Skills)
	}
	if p.Projects != nil {
		doc.Projects = clone(*p.Projects)
	}
	if p.Experience != nil {
		doc.Experience = clone(*p.Experience)
	}
	if p.Education != nil {
		doc.Education = clone(*p.Education)
	}
	if p.ResumeTemplate != nil {
		doc.ResumeTemplate = *p.ResumeTemplate
	}
	if p.PortfolioTemplate != nil {
		doc.PortfolioTemplate = *p.PortfolioTemplate
	}
	if p.FontStyle != nil {
		doc.FontStyle = *p.FontStyle
	}
	return doc
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// NewID returns a fresh entity identifier (a random UUID, 122 bits of entropy).
func NewID() string {
	return uuid.NewString()
}

// AddProject appends seed as a new project with a fresh id and returns the id.
// Any id on seed is ignored. A project without an icon gets the default glyph.
func AddProject(doc types.Document, seed types.Project) (types.Document, string) {
	seed.ID = freshID(doc.Projects, projectID)
	seed.Technologies = clone(seed.Technologies)
	if seed.Icon.IsZero() {
		seed.Icon = icons.Builtin(icons.DefaultBuiltin)
	}
	doc.Projects = appendCopy(doc.Projects, seed)
	return doc, seed.ID
}

// AddExperience appends seed as a new experience entry with a fresh id.
func AddExperience(doc types.Document, seed types.Experience) (types.Document, string) {
	seed.ID = freshID(doc.Experience, experienceID)
	doc.Experience = appendCopy(doc.Experience, seed)
	return doc, seed.ID
}

// AddEducation appends seed as a new education entry with a fresh id.
func AddEducation(doc types.Document, seed types.Education) (types.Document, string) {
	seed.ID = freshID(doc.Education, educationID)
	doc.Education = appendCopy(doc.Education, seed)
	return doc, seed.ID
}

// RemoveProject drops the project with the given id. Absent ids are a no-op.
func RemoveProject(doc types.Document, id string) types.Document {
	doc.Projects = removeByID(doc.Projects, id, projectID)
	return doc
}

// RemoveExperience drops the experience entry with the given id. Absent ids are a no-op.
func RemoveExperience(doc types.Document, id string) types.Document {
	doc.Experience = removeByID(doc.Experience, id, experienceID)
	return doc
}

// RemoveEducation drops the education entry with the given id. Absent ids are a no-op.
func RemoveEducation(doc types.Document, id string) types.Document {
	doc.Education = removeByID(doc.Education, id, educationID)
	return doc
}

// ProjectPatch is a partial update of one project. Nil fields are left untouched.
type ProjectPatch struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Technologies  *[]string   `json:"technologies,omitempty"`
	Link          *string     `json:"link,omitempty"`
	GitHubLink    *string     `json:"githubLink,omitempty"`
	PortfolioLink *string     `json:"portfolioLink,omitempty"`
	Icon          *icons.Icon `json:"icon,omitempty"`
}

// ExperiencePatch is a partial update of one experience entry.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Role        *string `json:"role,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationPatch is a partial update of one education entry.
type EducationPatch struct {
	School         *string `json:"school,omitempty"`
	Degree         *string `json:"degree,omitempty"`
	Field          *string `json:"field,omitempty"`
	GraduationDate *string `json:"graduationDate,omitempty"`
}

// ReplaceProject merges p into the project with the given id.
// Other projects are carried over unchanged. Absent ids are a no-op.
func ReplaceProject(doc types.Document, id string, p ProjectPatch) types.Document {
	doc.Projects = replaceByID(doc.Projects, id, projectID, func(proj types.Project) types.Project {
		setString(&proj.Title, p.Title)
		setString(&proj.Description, p.Description)
		setString(&proj.Link, p.Link)
		setString(&proj.GitHubLink, p.GitHubLink)
		setString(&proj.PortfolioLink, p.PortfolioLink)
		if p.Technologies != nil {
			proj.Technologies = clone(*p.Technologies)
		}
		if p.Icon != nil {
			proj.Icon = *p.Icon
		}
		return proj
	})
	return doc
}

// ReplaceExperience merges p into the experience entry with the given id.
func ReplaceExperience(doc types.Document, id string, p ExperiencePatch) types.Document {
	doc.Experience = replaceByID(doc.Experience, id, experienceID, func(e types.Experience) types.Experience {
		setString(&e.Company, p.Company)
		setString(&e.Role, p.Role)
		setString(&e.StartDate, p.StartDate)
		setString(&e.EndDate, p.EndDate)
		setString(&e.Description, p.Description)
		return e
	})
	return doc
}

// ReplaceEducation merges p into the education entry with the given id.
func ReplaceEducation(doc types.Document, id string, p EducationPatch) types.Document {
	doc.Education = replaceByID(doc.Education, id, educationID, func(e types.Education) types.Education {
		setString(&e.School, p.School)
		setString(&e.Degree, p.Degree)
		setString(&e.Field, p.Field)
		setString(&e.GraduationDate, p.GraduationDate)
		return e
	})
	return doc
}

func projectID(p types.Project) string       { return p.ID }
func experienceID(e types.Experience) string { return e.ID }
func educationID(e types.Education) string   { return e.ID }

// freshID draws ids until one is unused in list. A collision is practically
// impossible with random UUIDs; the check keeps the uniqueness invariant exact.
func freshID[T any](list []T, idOf func(T) string) string {
	for {
		id := NewID()
		if indexByID(list, id, idOf) < 0 {
			return id
		}
	}
}

func indexByID[T any](list []T, id string, idOf func(T) string) int {
	for i, item := range list {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	idx := indexByID(list, id, idOf)
	if idx < 0 {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...)
}

func replaceByID[T any](list []T, id string, idOf func(T) string, merge func(T) T) []T {
	idx := indexByID(list, id, idOf)
	if idx < 0 {
		return list
	}
	out := clone(list)
	out[idx] = merge(out[idx])
	return out
}

func appendCopy[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

func clone[T any](list []T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, len(list))
	copy(out, list)
	return out
}
