package client

import (
	"errors"
	"fmt"
)

// Error is the single failure kind returned by the gateway. Network errors,
// non-2xx statuses and decode failures all surface as *Error; Status is zero
// unless the backend answered.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}
