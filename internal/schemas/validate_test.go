package schemas

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNamed_SkillGaps(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{name: "valid list", json: `[{"skill": "Docker", "reason": "Most teams ship containers."}]`},
		{name: "empty list", json: `[]`},
		{name: "missing reason", json: `[{"skill": "Docker"}]`, wantError: true},
		{name: "blank skill", json: `[{"skill": "", "reason": "x"}]`, wantError: true},
		{name: "object instead of list", json: `{"skill": "Docker", "reason": "x"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNamed(SkillGaps, tt.json)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "error should be ValidationError type")
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateNamed_MatchScore(t *testing.T) {
	assert.NoError(t, ValidateNamed(MatchScore, `{"score": 72, "suggestions": ["Add metrics"]}`))
	assert.NoError(t, ValidateNamed(MatchScore, `{"score": 140}`), "range is enforced by the caller")

	err := ValidateNamed(MatchScore, `{"score": "high"}`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "score", ve.Errors[0].Field)

	err = ValidateNamed(MatchScore, `{"suggestions": []}`)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestValidateNamed_UnknownSchema(t *testing.T) {
	err := ValidateNamed("resume_plan", `{}`)
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateNamed_MalformedJSON(t *testing.T) {
	err := ValidateNamed(MatchScore, `{ invalid json }`)
	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestValidateFile_Document(t *testing.T) {
	assert.NoError(t, ValidateFile(Document, filepath.Join("testdata", "valid_document.json")))

	err := ValidateFile(Document, filepath.Join("testdata", "invalid_document.json"))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "resumeTemplate")
	assert.Contains(t, fields, "accentColor")
	assert.Contains(t, fields, "projects.0")
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile(Document, filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))
	assert.Error(t, ValidateJSONString(schema, `{"name": 3}`))

	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestEmbeddedSchemas_Load(t *testing.T) {
	for _, name := range Names() {
		src, err := Source(name)
		require.NoError(t, err, name)
		assert.Contains(t, src, `"$schema"`)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "score", Message: "Invalid type"}}}
	assert.Contains(t, err.Error(), "1. score: Invalid type")
}
