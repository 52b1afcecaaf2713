// Package mxsweep validates batches of email addresses by syntax and by
// live DNS mail-exchange reachability of the domain part, under a global
// rate ceiling, persisting one verdict per input address.
//
// The pipeline per address is: syntax check → (on pass) rate-limited MX
// resolution → status classification → sink write. A bounded pool of
// workers drains the batch concurrently; the token bucket is shared across
// all of them.
//
// Basic usage:
//
//	runner, err := mxsweep.New(mxsweep.Options{RateLimit: 50})
//	if err != nil {
//	    // configuration error
//	}
//	store := sink.NewMemory()
//	summary, err := runner.Run(ctx, addresses, store)
package mxsweep

import "github.com/optimode/mxsweep/types"

// Verdict is a re-export from the types package so that consumers
// don't need to import the types package directly.
type Verdict = types.Verdict

// Status is a re-export.
type Status = types.Status

// Summary is a re-export.
type Summary = types.Summary

// Status constants re-exported.
const (
	StatusValid         = types.StatusValid
	StatusInvalidSyntax = types.StatusInvalidSyntax
	StatusNoMX          = types.StatusNoMX
	StatusDNSTimeout    = types.StatusDNSTimeout
	StatusDNSError      = types.StatusDNSError
)
