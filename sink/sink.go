// Package sink provides durable stores for pipeline verdicts. Both stores
// are append-oriented: a verdict is written once and never updated, and
// duplicated input addresses accumulate independent rows. Running the same
// batch twice doubles the record count; deduplication is deliberately not
// provided.
package sink

import "github.com/optimode/mxsweep/types"

// Criteria filters a Query. Zero-value fields match everything.
type Criteria struct {
	// Email matches exactly when non-empty.
	Email string
	// Status matches exactly when non-empty.
	Status types.Status
}

func (c Criteria) matches(v types.Verdict) bool {
	if c.Email != "" && v.Email != c.Email {
		return false
	}
	if c.Status != "" && v.Status != c.Status {
		return false
	}
	return true
}
