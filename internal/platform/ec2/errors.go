package ec2

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// apiErrorCode extracts the EC2 API error code, or "" for non-API errors.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound checks if an error indicates a resource was not found.
// EC2 encodes not-found per resource type (InvalidVpcID.NotFound,
// InvalidVolume.NotFound, ...), so the code suffix is matched.
func IsNotFound(err error) bool {
	return strings.HasSuffix(apiErrorCode(err), ".NotFound")
}

// IsDependencyViolation checks if a deletion failed because a dependent
// resource still exists. These errors are retryable: the dependency is
// usually a detach or terminate still propagating.
func IsDependencyViolation(err error) bool {
	return apiErrorCode(err) == "DependencyViolation"
}

// IsInvalidParameter checks if an error indicates bad request parameters.
// These errors are fatal and should not be retried.
func IsInvalidParameter(err error) bool {
	code := apiErrorCode(err)
	return strings.HasPrefix(code, "InvalidParameter") ||
		strings.HasPrefix(code, "InvalidAMIID") ||
		code == "UnsupportedOperation"
}

// IsRateLimited checks if an error indicates API throttling.
func IsRateLimited(err error) bool {
	return apiErrorCode(err) == "RequestLimitExceeded"
}
