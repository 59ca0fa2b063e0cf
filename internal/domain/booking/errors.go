package booking

import "errors"

// Rejections of a single user action. None of them is worth retrying.
var (
	ErrInvalidRange      = errors.New("end time must be after start time")
	ErrInvalidTransition = errors.New("action not allowed in current booking status")
	ErrForbidden         = errors.New("actor is not allowed to perform this action")
	ErrNotEditable       = errors.New("booking can only be edited while active")
	ErrUnknownRoomSize   = errors.New("room size has no tariff")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)
