package requests

import "errors"

var (
	// ErrPinMismatch covers both "no such employee" and "wrong PIN" so the
	// response never reveals which half failed.
	ErrPinMismatch = errors.New("pin verification failed")
	// ErrInvalidTarget: a swap names a partner cell with no filled shift.
	ErrInvalidTarget = errors.New("target shift not found")
	// ErrQuotaExceeded: the requester hit the monthly request cap.
	ErrQuotaExceeded = errors.New("monthly request quota exceeded")
	// ErrInvalidType: request type is neither swap nor leave.
	ErrInvalidType = errors.New("invalid request type")
	// ErrInvalidState: a transition was attempted from the wrong status.
	ErrInvalidState = errors.New("request is not in a state that allows this transition")
)
