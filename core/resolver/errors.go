package resolver

import "errors"

var (
	ErrNilApplication = errors.New("application is required")
	ErrInvalidLevel   = errors.New("invalid approval level")
)
