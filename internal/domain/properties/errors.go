package properties

import "errors"

var (
	// ErrNotFound is returned when a referenced property id does not exist.
	ErrNotFound = errors.New("property not found")

	// ErrDuplicateCode is returned when an insert or update collides with
	// the unique code_internal index.
	ErrDuplicateCode = errors.New("code_internal already in use")

	// ErrInvalidArgument covers out-of-range numeric input caught inside
	// the mutation paths (negative price/tax, blank required fields).
	// Request validation should reject these upstream already.
	ErrInvalidArgument = errors.New("invalid argument")
)
