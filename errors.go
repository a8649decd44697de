package cubeplay

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubeplay package.
var (
	// Validation errors; these never reach the network or the player.
	ErrEmptyScramble = errors.New("cubeplay: scramble is empty")
	ErrNoScramble    = errors.New("cubeplay: no committed scramble to solve")

	// ErrBusy is returned when a scramble or solve sequence is already in
	// flight. The triggering call is a no-op.
	ErrBusy = errors.New("cubeplay: another operation is in progress")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubeplay: invalid move notation")
)

// HTTPStatusError reports a non-2xx response from the solver service.
type HTTPStatusError struct {
	Code   int    // HTTP status code
	Status string // status text, e.g. "Internal Server Error"
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("cubeplay: solver returned HTTP %d %s", e.Code, e.Status)
}

// SolverError reports a business-level failure the solver returned in a
// successful HTTP response. It is distinct from transport failures: the
// request arrived, the solver just could not solve the scramble.
type SolverError struct {
	Message string
}

func (e *SolverError) Error() string {
	return "cubeplay: solver: " + e.Message
}
