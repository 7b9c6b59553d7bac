package resumes

import "errors"

var (
	// ErrNotFound covers both a missing resume and one owned by someone
	// else; callers cannot distinguish the two.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates a caller-supplied field failed validation.
	ErrInvalidInput = errors.New("invalid resume input")
)
