package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for export formats other than pdf, docx and html.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnknownTemplate is returned for template ids not in Templates().
	ErrUnknownTemplate = errors.New("unknown template")
)

// RenderError represents a failure while producing an export file
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render %s: %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
