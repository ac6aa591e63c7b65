package report

import "errors"

var ErrInvalidFilter = errors.New("invalid pending approvals filter")
