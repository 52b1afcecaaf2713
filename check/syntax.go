package check

import (
	"strings"
	"unicode"

	"github.com/optimode/mxsweep/internal/parse"
)

// SyntaxChecker classifies an address as syntactically plausible or not.
// It is a pure classifier: no network access, no side effects, and it never
// fails on malformed input — anything unparseable is simply not valid.
// The rules follow RFC 5321 structure with RFC 6531 (SMTPUTF8) local parts.
type SyntaxChecker struct{}

func NewSyntaxChecker() *SyntaxChecker {
	return &SyntaxChecker{}
}

// Check reports whether the address has a valid email shape.
func (c *SyntaxChecker) Check(addr parse.Address) bool {
	if addr.Raw == "" || !addr.Split {
		return false
	}

	// Length limits (RFC 5321)
	if len(addr.Raw) > 254 || len(addr.Local) > 64 {
		return false
	}

	// Quoted local parts ("anything"@domain) allow all printable characters.
	if !isQuoted(addr.Local) {
		if !validLocal(addr.Local) {
			return false
		}
	}

	// Validate the Unicode form; IDNA2008 conversion already happened
	// during parsing, so a label that survived it is at worst misshapen,
	// not malformed.
	return validDomain(addr.DomainUnicode)
}

func isQuoted(local string) bool {
	return strings.HasPrefix(local, `"`) && strings.HasSuffix(local, `"`) && len(local) >= 2
}

// validLocal checks the unquoted local part.
// ASCII follows RFC 5321; non-ASCII runes are allowed per RFC 6531
// except control characters.
func validLocal(local string) bool {
	if local == "" {
		return false
	}

	const asciiSpecial = "!#$%&'*+/=?^_`{|}~-."

	for _, ch := range local {
		if ch > 127 {
			if unicode.IsControl(ch) {
				return false
			}
			continue
		}
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			continue
		}
		if !strings.ContainsRune(asciiSpecial, ch) {
			return false
		}
	}

	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	return !strings.Contains(local, "..")
}

// validDomain checks the domain part (Unicode form): at least two labels,
// each label 1-63 characters of letters/digits/hyphens with no edge hyphens,
// and the TLD not all digits.
func validDomain(domain string) bool {
	if domain == "" || len(domain) > 253 {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, ch := range label {
			if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '-' {
				return false
			}
		}
	}

	tld := labels[len(labels)-1]
	for _, ch := range tld {
		if !unicode.IsDigit(ch) {
			return true
		}
	}
	return false
}
