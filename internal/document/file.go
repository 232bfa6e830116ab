package document

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/elevate/internal/schemas"
	"github.com/jonathan/elevate/internal/types"
)

// LoadError represents an error reading or decoding a document file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads a document in the editor's saved format. The file is checked
// against the document schema, then normalised and validated.
func Load(path string) (types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Decode(content)
}

// Decode parses and normalises a document from JSON.
func Decode(content []byte) (types.Document, error) {
	if err := schemas.ValidateNamed(schemas.Document, string(content)); err != nil {
		return types.Document{}, &LoadError{Message: "document does not match schema", Cause: err}
	}

	doc := types.NewDocument()
	if err := json.Unmarshal(content, &doc); err != nil {
		return types.Document{}, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	doc = types.Normalize(doc)

	if err := doc.Validate(); err != nil {
		return types.Document{}, &LoadError{Message: "invalid document", Cause: err}
	}
	return doc, nil
}
