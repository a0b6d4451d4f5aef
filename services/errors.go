package services

import "errors"

var (
	// ErrSubjectNotFound is returned when an operation references a subject
	// the user does not have.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectExists is returned when a rename targets a name already in use.
	ErrSubjectExists = errors.New("subject name already in use")
)
