package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(GenerationFile, KeySummary)
	require.NoError(t, err)
	assert.Contains(t, prompt, "professional summary")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(GenerationFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, welcome to {{.Company}}! {{.Missing}}", map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp! {{.Missing}}", result)
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", result)
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(GenerationFile, KeyRefineBullet, map[string]string{"Text": "made a website"})
	require.NoError(t, err)
	assert.Contains(t, prompt, `Original: "made a website"`)
	assert.NotContains(t, prompt, "{{.")

	_, err = Render(GenerationFile, KeyRefineBullet, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Text")
}

func TestGenerationPrompts_AllPresent(t *testing.T) {
	ClearCache()

	keys, err := List(GenerationFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCoverLetter, KeyMatchScore, KeyRefineBullet, KeySkillGaps, KeySummary}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(GenerationFile, KeyMatchScore)
	require.NoError(t, err)
	prompt2, err := Get(GenerationFile, KeyMatchScore)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
