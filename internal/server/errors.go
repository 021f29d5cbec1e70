package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/arete/internal/db"
	"github.com/jonathan/arete/internal/export"
	"github.com/jonathan/arete/internal/github"
	"github.com/jonathan/arete/internal/ingestion"
	"github.com/jonathan/arete/internal/jobs"
	"github.com/jonathan/arete/internal/parsing"
	"github.com/jonathan/arete/internal/schemas"
	"github.com/jonathan/arete/internal/storage"
	"github.com/jonathan/arete/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalid     *ErrValidation
		fieldErrs   validator.ValidationErrors
		parseErr    *parsing.ParseError
		analysisErr *jobs.AnalysisError
		schemaErr   *schemas.ValidationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &invalid),
		errors.As(err, &fieldErrs),
		errors.Is(err, types.ErrNoJobInput),
		errors.Is(err, ingestion.ErrUnsupportedFormat),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, export.ErrUnknownTemplate):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, github.ErrUserNotFound):
		return http.StatusNotFound
	case errors.As(err, &parseErr),
		errors.As(err, &analysisErr),
		errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage renders err for a response body. Field validation failures
// name the first offending field.
func errorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return extractValidationErrors(fieldErrs)
	}
	return err.Error()
}

func extractValidationErrors(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "validation error: invalid request"
	}
	fe := errs[0]
	return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
}
