// =======================
// hunt/errors.go
// =======================

package hunt

import "errors"

var (
	// ErrInvalidCharset indicates an empty, duplicated or non-printable charset.
	ErrInvalidCharset = errors.New("hunt: charset must be non-empty printable ASCII without repeats")
	// ErrInvalidLength indicates a candidate length outside [1, MaxLength].
	ErrInvalidLength = errors.New("hunt: candidate length out of range")
	// ErrUnknownAlgorithm indicates an unsupported digest algorithm name.
	ErrUnknownAlgorithm = errors.New("hunt: unknown digest algorithm")
	// ErrUnknownMode indicates an unsupported match mode.
	ErrUnknownMode = errors.New("hunt: unknown match mode")
	// ErrEmptyPattern indicates an empty search pattern.
	ErrEmptyPattern = errors.New("hunt: pattern must not be empty")
	// ErrInvalidWorkers indicates a worker count below one.
	ErrInvalidWorkers = errors.New("hunt: workers must be at least 1")
)
