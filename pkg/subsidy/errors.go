package subsidy

import "errors"

// ErrInvalidArgument is returned for programming-contract violations, such
// as committing with a reference_id but no reference_type. It fails fast
// and is never silently corrected.
var ErrInvalidArgument = errors.New("invalid argument")
