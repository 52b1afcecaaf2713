// Package types contains the shared types for mxsweep.
// This package does not import anything from other mxsweep packages
// to avoid circular imports.
package types

import "time"

// Status is the terminal classification of one checked address.
type Status = string

const (
	// StatusValid means the domain publishes MX records (or, with the
	// A-record fallback enabled, at least an address record).
	StatusValid Status = "VALID"
	// StatusInvalidSyntax means the address failed the syntax check;
	// no DNS query is made for such addresses.
	StatusInvalidSyntax Status = "INVALID_SYNTAX"
	// StatusNoMX means the domain has no mail routing: NXDOMAIN, or an
	// authoritative answer without MX records.
	StatusNoMX Status = "NO_MX"
	// StatusDNSTimeout means the MX query exceeded the configured timeout.
	StatusDNSTimeout Status = "DNS_TIMEOUT"
	// StatusDNSError means the MX query failed for any other transport
	// or protocol reason.
	StatusDNSError Status = "DNS_ERROR"
)

// Verdict is the immutable classification produced for one input address.
// A worker creates it exactly once and hands it to the sink exactly once;
// duplicated input addresses produce independent Verdicts.
type Verdict struct {
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Summary aggregates one pipeline run per terminal status.
// NotPersisted counts verdicts that were computed but could not be written
// to the sink; those are still counted under their status, so NotPersisted
// overlaps the status counts rather than replacing them.
type Summary struct {
	Valid         int `json:"valid"`
	InvalidSyntax int `json:"invalidSyntax"`
	NoMX          int `json:"noMx"`
	DNSTimeout    int `json:"dnsTimeout"`
	DNSError      int `json:"dnsError"`
	NotPersisted  int `json:"notPersisted,omitempty"`
	Total         int `json:"total"`
}
