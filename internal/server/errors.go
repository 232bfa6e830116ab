package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/elevate/internal/fetch"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/rendering"
	"github.com/jonathan/elevate/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		empty      *generation.EmptyInputError
		notFound   *session.NotFoundError
		genErr     *generation.GenerationError
		upload     *icons.UploadError
		render     *rendering.RenderError
		fetchErr   *fetch.Error
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &empty), errors.As(err, &upload), errors.As(err, &render):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &genErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
