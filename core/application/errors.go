package application

import "errors"

var (
	ErrApplicationIDEmptyParam     = errors.New("application id is required")
	ErrApplicationNil              = errors.New("application is nil")
	ErrApplicationNotFound         = errors.New("application not found")
	ErrInvalidApplicationParameter = errors.New("invalid application parameter")
	ErrInvalidDecisionParameter    = errors.New("invalid decision parameter")
	ErrInvalidFilterParameter      = errors.New("invalid filter parameter")
	ErrArchiveStorage              = errors.New("unable to store archive snapshot")
)
