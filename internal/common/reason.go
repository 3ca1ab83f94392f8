package common

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable code describing why a preference update did
// not go through. The core never formats user-facing messages; callers map
// reasons to whatever the UI wants to show.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoIdentity       Reason = "no_identity"
	ReasonStoreUnreachable Reason = "store_unreachable"
	ReasonDuplicateIgnored Reason = "duplicate_ignored"
	ReasonUnknown          Reason = "unknown"
)

// UpdateError is returned by preference updates. It carries the reason code
// and, for store failures, the underlying error.
type UpdateError struct {
	Reason Reason
	Err    error
}

func (e *UpdateError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an UpdateError against the sentinel for its reason.
func (e *UpdateError) Is(target error) bool {
	switch e.Reason {
	case ReasonNoIdentity:
		return target == ErrNoIdentity
	case ReasonStoreUnreachable:
		return target == ErrStoreUnreachable
	case ReasonDuplicateIgnored:
		return target == ErrDuplicateIgnored
	case ReasonUnknown:
		return target == ErrUnknown
	}
	return false
}

// NewUpdateError builds an UpdateError with the given reason.
func NewUpdateError(reason Reason, err error) *UpdateError {
	return &UpdateError{Reason: reason, Err: err}
}

// ReasonOf extracts the reason code from err. nil maps to ReasonNone and any
// error that is not an UpdateError maps to ReasonUnknown.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	var ue *UpdateError
	if errors.As(err, &ue) {
		return ue.Reason
	}
	return ReasonUnknown
}
