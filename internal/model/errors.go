package model

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable marks a forecast provider timeout or outage. It is
// recovered locally by falling back to a degraded forecast.
var ErrProviderUnavailable = errors.New("forecast provider unavailable")

// InvalidParametersError reports malformed, missing, or out-of-range input.
// It always names the offending field and is never retried.
type InvalidParametersError struct {
	Field    string
	Guidance string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("invalid parameters: %s: %s", e.Field, e.Guidance)
}

// InsufficientDataError reports that a forecast or history series is too
// short to work with. Fatal only when even the fallback has no data.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s", e.Reason)
}

// InvariantViolationError reports an internal consistency failure such as a
// timeline length mismatch. Never expected in correct operation; always
// fatal and never silently corrected.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Detail)
}
