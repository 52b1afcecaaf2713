package mxsweep

import "errors"

var (
	// ErrInvalidRateLimit is returned when Options.RateLimit is zero or
	// negative. A rate of zero is rejected rather than read as
	// "unlimited" (or "never admit").
	ErrInvalidRateLimit = errors.New("mxsweep: rate limit must be a positive number of checks per second")

	// ErrInvalidWorkerCount is returned for a negative Options.Workers.
	ErrInvalidWorkerCount = errors.New("mxsweep: worker count cannot be negative")

	// ErrInvalidDNSTimeout is returned for a negative Options.DNSTimeout.
	ErrInvalidDNSTimeout = errors.New("mxsweep: DNS timeout cannot be negative")
)
