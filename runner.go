package mxsweep

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/optimode/mxsweep/check"
	"github.com/optimode/mxsweep/internal/parse"
	"github.com/optimode/mxsweep/internal/ratelimit"
	"github.com/optimode/mxsweep/types"
)

// DomainResolver classifies the mail reachability of one domain.
// check.Resolver is the production implementation.
type DomainResolver interface {
	Resolve(ctx context.Context, domain string) check.Outcome
}

// Sink durably records verdicts. Writes from concurrent workers must be
// safe; implementations serialize at the store boundary. The pipeline
// never updates a verdict in place, so append-only stores suffice.
type Sink interface {
	Write(ctx context.Context, v types.Verdict) error
}

// Runner drives the validation pipeline: a pool of workers drains the
// address batch, each address moving through
//
//	pending → syntax checked → invalid-syntax (terminal)
//	                         → rate wait → resolving → valid | no-mx |
//	                                       dns-timeout | dns-error (terminal)
//
// Every terminal verdict is written to the sink exactly once. No domain is
// resolved without a prior rate-limiter admission, and each address takes
// exactly one admission and at most one resolver call.
type Runner struct {
	opts     Options
	syntax   *check.SyntaxChecker
	limiter  *ratelimit.Limiter
	resolver DomainResolver
	log      zerolog.Logger
}

// New creates a Runner with the production DNS resolver.
// Option validation errors (such as a non-positive rate limit) are
// returned here, before any processing.
func New(opts Options) (*Runner, error) {
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	r.resolver = check.NewResolver(check.ResolverConfig{
		Timeout:     r.opts.DNSTimeout,
		FallbackToA: r.opts.FallbackToA,
	})
	return r, nil
}

// NewWithResolver is a test-oriented constructor that overrides the
// domain resolver.
func NewWithResolver(opts Options, resolver DomainResolver) (*Runner, error) {
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	r.resolver = resolver
	return r, nil
}

func newRunner(opts Options) (*Runner, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(opts.RateLimit)
	if err != nil {
		// validate() already rejected non-positive rates; keep the
		// limiter's own error shape anyway.
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Runner{
		opts:    opts,
		syntax:  check.NewSyntaxChecker(),
		limiter: limiter,
		log:     log,
	}, nil
}

// Run validates every address in the batch and writes one verdict per
// address to the sink. Per-address failures never abort the batch.
//
// Cancelling ctx stops dequeuing; addresses already past the rate gate
// finish their resolution (bounded by the DNS timeout) and are persisted,
// addresses still waiting at the gate are abandoned without a verdict.
// On cancellation the partial Summary is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, addresses []string, sink Sink) (types.Summary, error) {
	bufSize := len(addresses)
	if bufSize > 1000 {
		bufSize = 1000
	}
	jobs := make(chan string, bufSize)
	go func() {
		defer close(jobs)
		for _, a := range addresses {
			select {
			case jobs <- a:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		summary types.Summary
	)

	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range jobs {
				v, ok := r.classify(ctx, addr)
				if !ok {
					continue // cancelled at the rate gate, no verdict
				}

				persistErr := r.persist(ctx, sink, v)

				mu.Lock()
				tally(&summary, v.Status)
				if persistErr != nil {
					summary.NotPersisted++
				}
				mu.Unlock()

				r.log.Debug().
					Str("email", v.Email).
					Str("status", v.Status).
					Msg("verdict")
			}
		}()
	}

	wg.Wait()

	r.log.Info().
		Int("total", summary.Total).
		Int("valid", summary.Valid).
		Int("invalid_syntax", summary.InvalidSyntax).
		Int("no_mx", summary.NoMX).
		Int("dns_timeout", summary.DNSTimeout).
		Int("dns_error", summary.DNSError).
		Int("not_persisted", summary.NotPersisted).
		Msg("run complete")

	return summary, ctx.Err()
}

// classify moves one address through the pipeline stages to a terminal
// status. The returned bool is false only when the run was cancelled while
// the address waited at the rate gate; such addresses never reach a
// terminal state and produce no verdict.
func (r *Runner) classify(ctx context.Context, raw string) (types.Verdict, bool) {
	addr := parse.NewAddress(raw)

	// Syntax stage: free, no admission needed.
	if !r.syntax.Check(addr) {
		return verdict(addr.Raw, types.StatusInvalidSyntax), true
	}

	// Rate gate: the one admission this address will take.
	if err := r.limiter.Acquire(ctx); err != nil {
		return types.Verdict{}, false
	}

	// Resolution runs to completion once admitted; its own timeout bounds
	// it even if the run is being cancelled.
	outcome := r.resolver.Resolve(context.WithoutCancel(ctx), addr.Domain)
	return verdict(addr.Raw, statusFor(outcome)), true
}

// persist writes the verdict, retrying once on failure. A verdict that
// still cannot be written is surfaced in Summary.NotPersisted — distinct
// from every DNS-derived status — and logged, never silently dropped.
func (r *Runner) persist(ctx context.Context, sink Sink, v types.Verdict) error {
	wctx := context.WithoutCancel(ctx)
	err := sink.Write(wctx, v)
	if err == nil {
		return nil
	}
	r.log.Warn().Err(err).Str("email", v.Email).Msg("sink write failed, retrying")

	if err = sink.Write(wctx, v); err != nil {
		r.log.Error().Err(err).Str("email", v.Email).Msg("verdict not persisted")
		return err
	}
	return nil
}

func verdict(email string, status types.Status) types.Verdict {
	return types.Verdict{Email: email, Status: status, CheckedAt: time.Now()}
}

func statusFor(o check.Outcome) types.Status {
	switch o {
	case check.HasMX:
		return types.StatusValid
	case check.NoMX:
		return types.StatusNoMX
	case check.Timeout:
		return types.StatusDNSTimeout
	default:
		return types.StatusDNSError
	}
}

func tally(s *types.Summary, status types.Status) {
	s.Total++
	switch status {
	case types.StatusValid:
		s.Valid++
	case types.StatusInvalidSyntax:
		s.InvalidSyntax++
	case types.StatusNoMX:
		s.NoMX++
	case types.StatusDNSTimeout:
		s.DNSTimeout++
	case types.StatusDNSError:
		s.DNSError++
	}
}
