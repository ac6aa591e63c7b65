package ledger

import "errors"

var ErrApplicationIDEmptyParam = errors.New("application id is required")
