// Command mxsweep validates a file of email addresses (one per line) by
// syntax and DNS MX reachability, under a global rate ceiling, and stores
// the verdicts in Postgres or reports them on the console.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/optimode/mxsweep"
	"github.com/optimode/mxsweep/sink"
	"github.com/optimode/mxsweep/types"
)

var (
	rateLimit   int
	workers     int
	dnsTimeout  time.Duration
	fallbackToA bool
	databaseDSN string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "mxsweep FILE",
	Short: "Validate email addresses by syntax and DNS MX reachability",
	Long: `mxsweep reads email addresses from FILE (one per line, blank lines
ignored), classifies each by syntax and by live MX resolution of its
domain, and records one verdict per address.

Without --db the verdicts are reported on the console; with --db they are
appended to the email_checks table of the given Postgres database.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVar(&rateLimit, "rate-limit", mxsweep.DefaultRateLimit,
		"maximum DNS checks per second, shared across workers")
	rootCmd.Flags().IntVar(&workers, "workers", mxsweep.DefaultWorkers,
		"number of concurrent validation workers")
	rootCmd.Flags().DurationVar(&dnsTimeout, "dns-timeout", mxsweep.DefaultDNSTimeout,
		"timeout per DNS resolution")
	rootCmd.Flags().BoolVar(&fallbackToA, "fallback-a", false,
		"accept an A/AAAA record when a domain has no MX records")
	rootCmd.Flags().StringVar(&databaseDSN, "db", "",
		"Postgres DSN for storing verdicts (omit for console report)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log every verdict")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mxsweep:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	addresses, err := loadAddresses(args[0])
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		logger.Warn().Str("file", args[0]).Msg("no addresses found")
		return nil
	}
	logger.Info().
		Int("addresses", len(addresses)).
		Int("rate_limit", rateLimit).
		Int("workers", workers).
		Msg("starting validation")

	runner, err := mxsweep.New(mxsweep.Options{
		RateLimit:   rateLimit,
		Workers:     workers,
		DNSTimeout:  dnsTimeout,
		FallbackToA: fallbackToA,
		Logger:      &logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store mxsweep.Sink
		mem   *sink.Memory
	)
	if databaseDSN != "" {
		pg, err := sink.NewPostgres(ctx, databaseDSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
	} else {
		mem = sink.NewMemory()
		store = mem
	}

	start := time.Now()
	summary, runErr := runner.Run(ctx, addresses, store)
	elapsed := time.Since(start)

	if mem != nil {
		printReport(mem, summary)
	}
	printStats(summary, elapsed)

	if runErr != nil {
		logger.Warn().Msg("interrupted; results above are partial")
		return runErr
	}
	return nil
}

// loadAddresses reads one address per line, trimming whitespace and
// skipping blank lines. The pipeline never sees blank input.
func loadAddresses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening address file: %w", err)
	}
	defer f.Close()

	var addresses []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			addresses = append(addresses, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading address file: %w", err)
	}
	return addresses, nil
}

// printReport groups the stored verdicts by status, showing a sample of
// addresses per group.
func printReport(mem *sink.Memory, summary types.Summary) {
	const maxShow = 10

	statuses := []types.Status{
		types.StatusValid,
		types.StatusInvalidSyntax,
		types.StatusNoMX,
		types.StatusDNSTimeout,
		types.StatusDNSError,
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("RESULTS")
	fmt.Println(strings.Repeat("=", 60))

	for _, status := range statuses {
		verdicts, err := mem.Query(context.Background(), sink.Criteria{Status: status})
		if err != nil || len(verdicts) == 0 {
			continue
		}
		fmt.Printf("\n%s: %d address(es)\n", status, len(verdicts))
		show := len(verdicts)
		if show > maxShow {
			show = maxShow
		}
		for _, v := range verdicts[:show] {
			fmt.Printf("  %s\n", v.Email)
		}
		if len(verdicts) > show {
			fmt.Printf("  ... and %d more\n", len(verdicts)-show)
		}
	}
	fmt.Println()
}

func printStats(summary types.Summary, elapsed time.Duration) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("checked:        %d\n", summary.Total)
	fmt.Printf("valid:          %d\n", summary.Valid)
	fmt.Printf("invalid syntax: %d\n", summary.InvalidSyntax)
	fmt.Printf("no mx:          %d\n", summary.NoMX)
	fmt.Printf("dns timeout:    %d\n", summary.DNSTimeout)
	fmt.Printf("dns error:      %d\n", summary.DNSError)
	if summary.NotPersisted > 0 {
		fmt.Printf("NOT PERSISTED:  %d\n", summary.NotPersisted)
	}
	fmt.Printf("elapsed:        %.2fs\n", elapsed.Seconds())
	if summary.Total > 0 && elapsed > 0 {
		fmt.Printf("throughput:     %.1f addresses/s\n",
			float64(summary.Total)/elapsed.Seconds())
	}
}
