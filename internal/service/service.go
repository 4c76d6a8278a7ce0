// Package service holds the two application operations: querying
// tickets for a route and date, and bulk-loading generated tickets.
package service

// ValidationError marks a request rejected before it reached the store.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}
