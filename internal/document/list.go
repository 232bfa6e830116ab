package document

import (
	"fmt"

	"github.com/jonathan/elevate/internal/types"
)

// List names one of the document's entity lists.
type List string

// Entity lists.
const (
	ListProjects   List = "projects"
	ListExperience List = "experience"
	ListEducation  List = "education"
)

// ParseList validates a list name.
func ParseList(s string) (List, error) {
	switch l := List(s); l {
	case ListProjects, ListExperience, ListEducation:
		return l, nil
	default:
		return "", fmt.Errorf("unknown list %q", s)
	}
}

// Remove drops the entity with the given id from the named list.
func Remove(doc types.Document, list List, id string) types.Document {
	switch list {
	case ListProjects:
		return RemoveProject(doc, id)
	case ListExperience:
		return RemoveExperience(doc, id)
	case ListEducation:
		return RemoveEducation(doc, id)
	}
	return doc
}

// Has reports whether the named list holds an entity with the given id.
func Has(doc types.Document, list List, id string) bool {
	switch list {
	case ListProjects:
		return indexByID(doc.Projects, id, projectID) >= 0
	case ListExperience:
		return indexByID(doc.Experience, id, experienceID) >= 0
	case ListEducation:
		return indexByID(doc.Education, id, educationID) >= 0
	}
	return false
}

// FindProject returns the project with the given id.
func FindProject(doc types.Document, id string) (types.Project, bool) {
	return find(doc.Projects, id, projectID)
}

// FindExperience returns the experience entry with the given id.
func FindExperience(doc types.Document, id string) (types.Experience, bool) {
	return find(doc.Experience, id, experienceID)
}

func find[T any](list []T, id string, idOf func(T) string) (T, bool) {
	if i := indexByID(list, id, idOf); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}
