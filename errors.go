package weave

import "errors"

// ErrInvalidArgument is reported when a required value is missing: a nil
// writer or encoder at write time, or nil content handed to an append. The
// failure is immediate and the builder is left unchanged.
var ErrInvalidArgument = errors.New("invalid argument")
