package jobs

import "errors"

var ErrInvalidJobType = errors.New("invalid job type")
