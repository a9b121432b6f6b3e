package hardware

import "errors"

// Error classes surfaced by hardware operations. Callers match with
// errors.Is; every occurrence is wrapped with resource context.
var (
	// ErrExistenceTimeout indicates a created resource never became
	// visible within its wait budget (instance record, public IP).
	ErrExistenceTimeout = errors.New("resource never materialized within budget")

	// ErrAvailabilityTimeout indicates a resource exists but never reached
	// the required state within its wait budget (volume "available").
	ErrAvailabilityTimeout = errors.New("resource never became available within budget")

	// ErrPrecondition indicates an operation was invoked before its
	// dependency was satisfied (disk operations before boot, ambiguous or
	// missing disk selector).
	ErrPrecondition = errors.New("operation precondition not satisfied")
)

// IsExistenceTimeout checks if an error is an existence timeout.
func IsExistenceTimeout(err error) bool {
	return errors.Is(err, ErrExistenceTimeout)
}

// IsAvailabilityTimeout checks if an error is an availability timeout.
func IsAvailabilityTimeout(err error) bool {
	return errors.Is(err, ErrAvailabilityTimeout)
}

// IsPrecondition checks if an error is a precondition violation.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
