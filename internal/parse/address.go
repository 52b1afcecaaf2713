package parse

import (
	"strings"

	"golang.org/x/net/idna"
)

// Address is the internal representation of a split email address.
// The check/ packages receive this as parameter.
type Address struct {
	Raw           string // the original, trimmed input
	Local         string // the part before the last @
	Domain        string // the part after the last @, ASCII/Punycode form (for DNS)
	DomainUnicode string // the part after the last @, Unicode form (for display)
	Split         bool   // false if Raw has no usable local@domain shape
}

// NewAddress splits the given string into local and domain parts on the
// LAST @, so quoted-ish local parts containing @ still split at the domain
// boundary. If splitting fails, Split=false but Raw is always populated.
// Internationalized domains (IDNA2008) are converted to Punycode for DNS.
func NewAddress(raw string) Address {
	raw = strings.TrimSpace(raw)

	atIdx := strings.LastIndex(raw, "@")
	if atIdx < 1 || atIdx >= len(raw)-1 {
		return Address{Raw: raw}
	}

	local := raw[:atIdx]
	domain := strings.ToLower(raw[atIdx+1:])

	asciiDomain, unicodeDomain, ok := convertDomain(domain)
	if !ok {
		return Address{Raw: raw}
	}

	return Address{
		Raw:           raw,
		Local:         local,
		Domain:        asciiDomain,
		DomainUnicode: unicodeDomain,
		Split:         true,
	}
}

// convertDomain converts a domain to both ASCII/Punycode and Unicode forms.
// Returns (ascii, unicode, ok). ok is false if the domain contains
// non-ASCII characters that fail IDNA2008 validation.
func convertDomain(domain string) (ascii, unicode string, ok bool) {
	hasNonASCII := false
	for _, r := range domain {
		if r > 127 {
			hasNonASCII = true
			break
		}
	}

	if hasNonASCII {
		a, err := idna.Lookup.ToASCII(domain)
		if err != nil {
			return "", "", false
		}
		return a, domain, true
	}

	// Pure ASCII domain: try to get the Unicode display form
	// (handles existing Punycode like xn--mnchen-3ya.de → münchen.de)
	u, err := idna.Display.ToUnicode(domain)
	if err != nil {
		u = domain
	}
	return domain, u, true
}
