package check

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Outcome is the classification of one DNS resolution attempt.
type Outcome int

const (
	// HasMX: the domain publishes at least one MX record.
	HasMX Outcome = iota
	// NoMX: the domain has no mail routing — NXDOMAIN, or an
	// authoritative NOERROR answer without MX records.
	NoMX
	// Timeout: the query exceeded the configured timeout. Distinct from
	// Error so callers can tell slow infrastructure from broken domains.
	Timeout
	// Error: any other DNS transport or protocol failure.
	Error
)

func (o Outcome) String() string {
	switch o {
	case HasMX:
		return "has-mx"
	case NoMX:
		return "no-mx"
	case Timeout:
		return "timeout"
	default:
		return "error"
	}
}

// ResolverConfig is the resolver configuration.
type ResolverConfig struct {
	// Timeout bounds each Resolve call end to end.
	Timeout time.Duration
	// FallbackToA, when true, issues an A (then AAAA) query after an
	// authoritative empty MX answer and reports HasMX if the domain has
	// any address record. Default false: strict MX requirement, an
	// A-only domain stays NoMX. The fallback runs inside the same Resolve
	// call and is best-effort: if it fails, the strict NoMX stands.
	FallbackToA bool
}

// exchangeFunc performs one DNS round trip. Injectable for testability.
type exchangeFunc func(ctx context.Context, msg *dns.Msg) (*dns.Msg, error)

// Resolver issues MX (and optionally fallback A/AAAA) queries for a domain.
// It never retries: a failed query is classified and returned, and any
// retry policy belongs to the caller.
type Resolver struct {
	cfg      ResolverConfig
	exchange exchangeFunc
}

// NewResolver creates a resolver that queries the first nameserver from
// /etc/resolv.conf over UDP. If the resolver configuration cannot be read,
// localhost:53 is used.
func NewResolver(cfg ResolverConfig) *Resolver {
	nameserver := "127.0.0.1:53"
	if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(conf.Servers) > 0 {
		nameserver = net.JoinHostPort(conf.Servers[0], conf.Port)
	}

	client := &dns.Client{
		Net:     "udp",
		Timeout: cfg.Timeout,
	}

	return &Resolver{
		cfg: cfg,
		exchange: func(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
			resp, _, err := client.ExchangeContext(ctx, msg, nameserver)
			return resp, err
		},
	}
}

// NewResolverWithExchange is a test-oriented constructor that overrides the
// DNS round-trip function.
func NewResolverWithExchange(cfg ResolverConfig, fn func(ctx context.Context, msg *dns.Msg) (*dns.Msg, error)) *Resolver {
	r := NewResolver(cfg)
	r.exchange = fn
	return r
}

// Resolve classifies the mail reachability of one domain.
func (r *Resolver) Resolve(ctx context.Context, domain string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	resp, err := r.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return classifyErr(err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return NoMX
	default:
		return Error
	}

	for _, ans := range resp.Answer {
		if _, ok := ans.(*dns.MX); ok {
			return HasMX
		}
	}

	// Authoritative answer, zero MX records.
	if r.cfg.FallbackToA && r.hasAddressRecord(ctx, domain) {
		return HasMX
	}
	return NoMX
}

// hasAddressRecord reports whether the domain has an A or AAAA record.
// Failures here never escalate: the caller already holds an authoritative
// no-MX answer and the fallback only exists to upgrade it.
func (r *Resolver) hasAddressRecord(ctx context.Context, domain string) bool {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		resp, err := r.query(ctx, domain, qtype)
		if err != nil || resp.Rcode != dns.RcodeSuccess {
			continue
		}
		for _, ans := range resp.Answer {
			switch ans.(type) {
			case *dns.A, *dns.AAAA:
				return true
			}
		}
	}
	return false
}

func (r *Resolver) query(ctx context.Context, domain string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true
	return r.exchange(ctx, msg)
}

func classifyErr(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Timeout
	}
	return Error
}
