package mxsweep

import (
	"time"

	"github.com/rs/zerolog"
)

// Options configures a pipeline Runner.
type Options struct {
	// RateLimit is the global ceiling on DNS check-initiations per second,
	// shared across all workers. Required: zero or negative is a
	// configuration error.
	RateLimit int

	// Workers is the number of concurrent pipeline workers. Default: 5
	Workers int

	// DNSTimeout bounds each domain resolution. Default: 5s
	DNSTimeout time.Duration

	// FallbackToA when true accepts an A/AAAA record when a domain answers
	// authoritatively without MX records, treating a live-but-mailless
	// domain as deliverable. Default: false (strict MX requirement).
	FallbackToA bool

	// Logger receives per-address debug events and run-level reporting.
	// Default: a nop logger; the library is silent unless one is wired in.
	Logger *zerolog.Logger
}

// Defaults. DefaultRateLimit is not applied automatically: the library
// requires an explicit ceiling, and the constant exists for callers (such
// as the CLI) that want a conventional one.
const (
	DefaultRateLimit  = 50
	DefaultWorkers    = 5
	DefaultDNSTimeout = 5 * time.Second
)

// withDefaults fills unset values. RateLimit stays as given.
func (o Options) withDefaults() Options {
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.DNSTimeout == 0 {
		o.DNSTimeout = DefaultDNSTimeout
	}
	return o
}

func (o Options) validate() error {
	if o.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	if o.Workers < 0 {
		return ErrInvalidWorkerCount
	}
	if o.DNSTimeout < 0 {
		return ErrInvalidDNSTimeout
	}
	return nil
}
