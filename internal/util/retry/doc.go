// Package retry provides bounded wait primitives for eventually-consistent
// cloud resources.
//
// [Poll] runs a predicate at a fixed interval until it reports done or the
// attempt budget is exhausted; it backs every wait-for-state loop in the
// hardware layer. [WithExponentialBackoff] retries an operation with
// configurable max attempts, initial delay, and maximum delay, and is used
// for EC2 API calls that may fail transiently.
package retry
