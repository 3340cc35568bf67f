// Command mmverify parses a Metamath database and verifies every provable
// it declares: a thin flag/exit-code wrapper around the packages that do
// the real work.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mm-verify/mm/db"
	"github.com/mm-verify/mm/internal/report"
	"github.com/mm-verify/mm/parse"
	"github.com/mm-verify/mm/verify"
)

var (
	debug bool
	quiet bool
	stats bool
)

// exitError carries the process exit code alongside the underlying error,
// so Execute's single error return can still drive distinct exit codes for
// parse failures versus verification failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	root := &cobra.Command{
		Use:           "mmverify <file.mm>",
		Short:         "Parse and verify a Metamath database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().BoolVar(&debug, "debug", false, "print the full error chain on failure and trace each provable as verification starts")
	root.Flags().BoolVar(&quiet, "quiet", false, "suppress the per-provable progress line")
	root.Flags().BoolVar(&stats, "stats", false, "print database statistics upon exit")

	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func run(cmd *cobra.Command, args []string) error {
	level := hclog.Info
	if debug {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mmverify",
		Output: os.Stderr,
		Level:  level,
	})

	database, err := parse.ParseFile(args[0])
	if err != nil {
		logFailure(logger, "parse failed", err)
		return &exitError{code: 1, err: err}
	}

	var opts []verify.Option
	if debug {
		opts = append(opts, verify.WithOnStart(func(lbl db.LabelID) {
			logger.Debug("verifying", "label", database.LabelName(lbl))
		}))
	}
	result, err := verify.Verify(database, opts...)
	if err != nil {
		logFailure(logger, "verification failed", err)
		return &exitError{code: 2, err: err}
	}

	if !quiet {
		out := report.NewErrWriter(os.Stdout)
		for _, pr := range result.Provables {
			status := "verified"
			if pr.Outcome == verify.Incomplete {
				status = "incomplete"
			}
			fmt.Fprintf(out, "%s: %s\n", database.LabelName(pr.Label), status)
		}
		if out.Err != nil {
			return &exitError{code: 1, err: out.Err}
		}
	}
	logger.Info(fmt.Sprintf("%d verified, %d incomplete", result.Verified, result.Incomplete))
	if stats {
		logger.Info(fmt.Sprintf("%d constants, %d variables, %d axioms, %d provables",
			len(database.Constants), len(database.Variables), len(database.Axioms), len(database.Provables)))
	}

	if !result.OK() {
		err := fmt.Errorf("%d incomplete provable(s)", result.Incomplete)
		return &exitError{code: 2, err: err}
	}
	return nil
}

func logFailure(logger hclog.Logger, msg string, err error) {
	if debug {
		logger.Error(msg, "error", fmt.Sprintf("%+v", err))
		return
	}
	logger.Error(msg, "error", err.Error())
}
