package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached at all
	// (DNS, connect, timeout). Errors that do not wrap this one happened
	// after a completed HTTP round trip.
	ErrUnavailable = errors.New("backend unreachable")

	// ErrNoChoices indicates the backend answered with an empty choice list.
	ErrNoChoices = errors.New("no choices in response")
)

// Error wraps a provider failure with the provider name and operation.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reached reports whether the request made it to the backend. A nil error and
// any post-round-trip failure (bad status, malformed body) both count; only
// transport failures do not.
func Reached(err error) bool {
	return err == nil || !errors.Is(err, ErrUnavailable)
}
