// Package export turns rendered documents into downloadable files: a
// letter-size PDF of the resume and a plain-text cover letter.
package export

import "fmt"

// ExportError is returned when an artifact could not be produced or written.
// Exports are never retried automatically.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
