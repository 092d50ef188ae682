package queue

import "errors"

// ErrInvalidView indicates an unrecognized filter or sort parameter.
var ErrInvalidView = errors.New("invalid queue view")
