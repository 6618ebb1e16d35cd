package domain

import "errors"

var (
	ErrMissingIdentity     = errors.New("email is required")
	ErrInvalidDate         = errors.New("invalid entry date")
	ErrDetectorUnavailable = errors.New("detector unavailable")
)
