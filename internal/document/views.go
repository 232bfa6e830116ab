package document

import (
	"sort"
	"strings"

	"github.com/jonathan/elevate/internal/types"
)

// AllTechnologies returns every distinct non-blank technology tag across all
// projects, sorted lexicographically.
func AllTechnologies(doc types.Document) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range doc.Projects {
		for _, tag := range p.Tags() {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}

// FilterProjectsByTechnologies returns all projects when selected is empty,
// otherwise only projects tagged with at least one of the selected tags.
// Blank selections are ignored.
func FilterProjectsByTechnologies(doc types.Document, selected []string) []types.Project {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			want[s] = true
		}
	}
	if len(want) == 0 {
		return doc.Projects
	}

	out := make([]types.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		for _, tag := range p.Tags() {
			if want[tag] {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// FilteredView returns doc with its projects narrowed by the selected tags.
// This is the document shown in previews and exported to PDF.
func FilteredView(doc types.Document, selected []string) types.Document {
	doc.Projects = FilterProjectsByTechnologies(doc, selected)
	return doc
}

// ToggleTechnology adds tag to selected, or removes it if already present.
func ToggleTechnology(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == tag {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
