package event

import "errors"

var ErrInvalidEventType = errors.New("invalid event type")
