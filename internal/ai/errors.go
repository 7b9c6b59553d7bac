package ai

import "errors"

var (
	// ErrValidation indicates a missing or empty request field.
	ErrValidation = errors.New("missing required fields")

	// ErrExtraction indicates the uploaded document yielded no usable text.
	ErrExtraction = errors.New("could not extract text from document")

	// ErrGateway indicates the upstream LLM call failed. Detail is logged
	// server-side; callers only see a generic message.
	ErrGateway = errors.New("AI gateway failure")

	// ErrParse indicates the model returned something other than the JSON
	// object it was asked for. Fail-hard; no best-effort repair.
	ErrParse = errors.New("AI returned malformed data")
)
