package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/statuspad/statuspad/clientcli"
)

var checkRateLimit bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe every endpoint and compare statuses",
	Long: `Probe every endpoint on the server and compare the status code the
server answers with the one it is expected to answer.

The suite covers the success, redirect, client-error, and server-error
routes plus a full create/read/update/delete cycle against /api/users.

With --rate-limit the suite also floods the server until it answers
429. This consumes the remaining request budget of the current window.

Examples:
  statuspad-cli check
  statuspad-cli check --rate-limit
  statuspad-cli check --json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkRateLimit, "rate-limit", false, "also probe the rate limiter (floods the server)")
}

var errChecksFailed = errors.New("one or more checks failed")

func runCheck(_ *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	report, err := client.Check(context.Background(), clientcli.CheckOptions{
		RateLimit: checkRateLimit,
	})
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	if err := formatter.FormatCheck(os.Stdout, report); err != nil {
		return err
	}

	if report.Failed() > 0 {
		return errChecksFailed
	}
	return nil
}
