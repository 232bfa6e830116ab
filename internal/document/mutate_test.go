package document

import (
	"math/rand"
	"testing"

	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateField_MergesOnlyPresentFields(t *testing.T) {
	doc := types.NewDocument()
	doc.Email = "old@example.com"

	tmpl := types.ResumeTech
	updated := UpdateField(doc, Patch{
		FullName:       String("Jane Doe"),
		ResumeTemplate: &tmpl,
	})

	assert.Equal(t, "Jane Doe", updated.FullName)
	assert.Equal(t, "old@example.com", updated.Email)
	assert.Equal(t, types.ResumeTech, updated.ResumeTemplate)
	assert.Equal(t, types.DefaultPortfolioTemplate, updated.PortfolioTemplate)

	// Input value untouched.
	assert.Empty(t, doc.FullName)
	assert.Equal(t, types.ResumeModern, doc.ResumeTemplate)
}

func TestUpdateField_EmptyPatchIsIdentity(t *testing.T) {
	doc := types.NewDocument()
	doc.Skills = []string{"Go"}
	assert.Equal(t, doc, UpdateField(doc, Patch{}))
}

func TestUpdateField_DoesNotValidate(t *testing.T) {
	updated := UpdateField(types.NewDocument(), Patch{AccentColor: String("not-a-colour")})
	assert.Equal(t, "not-a-colour", updated.AccentColor)
}

func TestUpdateField_CopiesSlices(t *testing.T) {
	skills := []string{"Go", "SQL"}
	updated := UpdateField(types.NewDocument(), Patch{Skills: &skills})
	skills[0] = "Changed"
	assert.Equal(t, []string{"Go", "SQL"}, updated.Skills)
}

func TestAddEntity_AssignsUniqueIDs(t *testing.T) {
	doc := types.NewDocument()

	doc, first := AddProject(doc, types.Project{ID: "caller-id", Title: "One"})
	doc, second := AddProject(doc, types.Project{Title: "Two"})

	require.Len(t, doc.Projects, 2)
	assert.NotEqual(t, "caller-id", first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, doc.Projects[0].ID)
	assert.Equal(t, "Two", doc.Projects[1].Title)
	assert.Equal(t, icons.Builtin("Code"), doc.Projects[0].Icon)
	assert.NoError(t, doc.Validate())
}

func TestAddEntity_KeepsSeedIcon(t *testing.T) {
	doc, _ := AddProject(types.NewDocument(), types.Project{Icon: icons.Text("🔥")})
	assert.Equal(t, icons.KindText, doc.Projects[0].Icon.Kind)
}

func TestAddEntity_DoesNotShareBackingArray(t *testing.T) {
	base := types.NewDocument()
	base, _ = AddExperience(base, types.Experience{Company: "A"})

	left, _ := AddExperience(base, types.Experience{Company: "Left"})
	right, _ := AddExperience(base, types.Experience{Company: "Right"})

	assert.Len(t, base.Experience, 1)
	assert.Equal(t, "Left", left.Experience[1].Company)
	assert.Equal(t, "Right", right.Experience[1].Company)
}

func TestRemoveEntity(t *testing.T) {
	doc := types.NewDocument()
	doc, a := AddEducation(doc, types.Education{School: "A"})
	doc, b := AddEducation(doc, types.Education{School: "B"})
	doc, c := AddEducation(doc, types.Education{School: "C"})

	removed := RemoveEducation(doc, b)
	require.Len(t, removed.Education, 2)
	assert.Equal(t, a, removed.Education[0].ID)
	assert.Equal(t, c, removed.Education[1].ID)
	assert.Len(t, doc.Education, 3, "input document must be unchanged")

	assert.Equal(t, removed, RemoveEducation(removed, "missing"))
}

func TestReplaceEntityField(t *testing.T) {
	doc := types.NewDocument()
	doc, first := AddExperience(doc, types.Experience{Company: "Acme", Description: "did things"})
	doc, _ = AddExperience(doc, types.Experience{Company: "Globex"})

	updated := ReplaceExperience(doc, first, ExperiencePatch{Description: String("Led a team of 4")})

	assert.Equal(t, "Led a team of 4", updated.Experience[0].Description)
	assert.Equal(t, "Acme", updated.Experience[0].Company)
	assert.Equal(t, doc.Experience[1], updated.Experience[1])
	assert.Equal(t, "did things", doc.Experience[0].Description)
}

func TestReplaceEntityField_MissingIDIsNoOp(t *testing.T) {
	doc := types.NewDocument()
	doc, _ = AddProject(doc, types.Project{Title: "Site"})
	doc, _ = AddEducation(doc, types.Education{School: "MIT"})

	assert.Equal(t, doc, ReplaceProject(doc, "missing", ProjectPatch{Title: String("x")}))
	assert.Equal(t, doc, ReplaceEducation(doc, "missing", EducationPatch{School: String("x")}))
	assert.Equal(t, doc, ReplaceExperience(doc, "missing", ExperiencePatch{Role: String("x")}))
}

func TestReplaceProject_Fields(t *testing.T) {
	doc, id := AddProject(types.NewDocument(), types.Project{Title: "Site"})

	tags := []string{"React", "Go"}
	icon := icons.Resolve("https://example.com/icon.png")
	doc = ReplaceProject(doc, id, ProjectPatch{
		Technologies: &tags,
		GitHubLink:   String("https://github.com/x/site"),
		Icon:         &icon,
	})

	tags[0] = "Mutated"
	assert.Equal(t, []string{"React", "Go"}, doc.Projects[0].Technologies)
	assert.Equal(t, "https://github.com/x/site", doc.Projects[0].GitHubLink)
	assert.Equal(t, icons.KindImage, doc.Projects[0].Icon.Kind)
	assert.Equal(t, "Site", doc.Projects[0].Title)
}

// Random add/remove sequences must leave exactly the added-and-not-removed
// entities, each with a unique id, in insertion order.
func TestAddRemove_Sequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		doc := types.NewDocument()
		var expected []string

		for step := 0; step < 40; step++ {
			if len(expected) == 0 || rng.Intn(3) > 0 {
				var id string
				doc, id = AddProject(doc, types.Project{Title: "p"})
				expected = append(expected, id)
				continue
			}
			idx := rng.Intn(len(expected))
			doc = RemoveProject(doc, expected[idx])
			expected = append(expected[:idx:idx], expected[idx+1:]...)
		}

		got := make([]string, len(doc.Projects))
		seen := make(map[string]bool)
		for i, p := range doc.Projects {
			got[i] = p.ID
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
		if len(expected) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, expected, got)
		}
	}
}
