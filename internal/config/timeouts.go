package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable wait budgets.
// These values can be customized via environment variables.
type Timeouts struct {
	// IPAttempts and IPInterval bound the public-IP assignment poll.
	IPAttempts int
	IPInterval time.Duration

	// VolumeAttempts and VolumeInterval bound the volume "available" poll
	// before an attach.
	VolumeAttempts int
	VolumeInterval time.Duration

	// DetachAttempts and DetachInterval bound the best-effort wait for a
	// volume to come free before it is deleted during node teardown.
	DetachAttempts int
	DetachInterval time.Duration

	InstanceWait time.Duration // Timeout for instance exists/running/terminated waiters
	NetworkWait  time.Duration // Timeout for the VPC available waiter

	RetryMaxAttempts  int           // Maximum number of API retry attempts
	RetryInitialDelay time.Duration // Initial delay between API retries
}

// LoadTimeouts loads wait budgets from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - RIGCHECK_IP_ATTEMPTS (default: 60)
//   - RIGCHECK_IP_INTERVAL (default: 3s)
//   - RIGCHECK_VOLUME_ATTEMPTS (default: 10)
//   - RIGCHECK_VOLUME_INTERVAL (default: 5s)
//   - RIGCHECK_DETACH_ATTEMPTS (default: 6)
//   - RIGCHECK_DETACH_INTERVAL (default: 5s)
//   - RIGCHECK_TIMEOUT_INSTANCE_WAIT (default: 5m)
//   - RIGCHECK_TIMEOUT_NETWORK_WAIT (default: 2m)
//   - RIGCHECK_RETRY_MAX_ATTEMPTS (default: 5)
//   - RIGCHECK_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		IPAttempts:        parseInt("RIGCHECK_IP_ATTEMPTS", 60),
		IPInterval:        parseDuration("RIGCHECK_IP_INTERVAL", 3*time.Second),
		VolumeAttempts:    parseInt("RIGCHECK_VOLUME_ATTEMPTS", 10),
		VolumeInterval:    parseDuration("RIGCHECK_VOLUME_INTERVAL", 5*time.Second),
		DetachAttempts:    parseInt("RIGCHECK_DETACH_ATTEMPTS", 6),
		DetachInterval:    parseDuration("RIGCHECK_DETACH_INTERVAL", 5*time.Second),
		InstanceWait:      parseDuration("RIGCHECK_TIMEOUT_INSTANCE_WAIT", 5*time.Minute),
		NetworkWait:       parseDuration("RIGCHECK_TIMEOUT_NETWORK_WAIT", 2*time.Minute),
		RetryMaxAttempts:  parseInt("RIGCHECK_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("RIGCHECK_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
