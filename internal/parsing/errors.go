package parsing

import "fmt"

// APICallError means the model could not be reached or refused the request.
// The resume itself may be fine; callers surface it as a server error.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string { return describe("API call failed", e.Message, e.Cause) }
func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError means the input or the model output could not become ResumeData.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string { return describe("parse error", e.Message, e.Cause) }
func (e *ParseError) Unwrap() error { return e.Cause }

func describe(kind, msg string, cause error) string {
	if cause == nil {
		return kind + ": " + msg
	}
	return fmt.Sprintf("%s: %s: %v", kind, msg, cause)
}
