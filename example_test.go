package mxsweep_test

import (
	"context"
	"fmt"

	"github.com/optimode/mxsweep"
	"github.com/optimode/mxsweep/sink"
	"github.com/optimode/mxsweep/types"
)

func ExampleNew() {
	_, err := mxsweep.New(mxsweep.Options{RateLimit: 50})
	fmt.Println(err)
	// Output: <nil>
}

func ExampleNew_configError() {
	// A rate limit of zero is a configuration error, not "unlimited".
	_, err := mxsweep.New(mxsweep.Options{})
	fmt.Println(err)
	// Output: mxsweep: rate limit must be a positive number of checks per second
}

func ExampleRunner_Run() {
	// Syntax failures are classified without any DNS traffic, so this
	// example never leaves the process.
	runner, _ := mxsweep.New(mxsweep.Options{RateLimit: 10})
	store := sink.NewMemory()

	summary, _ := runner.Run(context.Background(),
		[]string{"not-an-email", "@nolocal.com", "nodomain@"}, store)

	fmt.Println(summary.InvalidSyntax, summary.Total)
	// Output: 3 3
}

func Example_queryVerdicts() {
	runner, _ := mxsweep.New(mxsweep.Options{RateLimit: 10})
	store := sink.NewMemory()
	_, _ = runner.Run(context.Background(), []string{"broken", "also broken"}, store)

	verdicts, _ := store.Query(context.Background(), sink.Criteria{Status: types.StatusInvalidSyntax})
	for _, v := range verdicts {
		fmt.Println(v.Status)
	}
	// Output:
	// INVALID_SYNTAX
	// INVALID_SYNTAX
}
