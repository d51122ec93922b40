package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrInvalidInput     = errors.New("invalid input")
	ErrBusy             = errors.New("another request is in progress")
	ErrSuperseded       = errors.New("superseded by a newer request")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrDishNotEmpty     = errors.New("dish still has recipes")
)

// Quiet reports whether err is a navigation or usage error that should be
// returned to the caller without alerting the user.
func Quiet(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrSuperseded) ||
		errors.Is(err, ErrIndexOutOfRange)
}
