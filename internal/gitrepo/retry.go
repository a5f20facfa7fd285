package gitrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/PolarWolf314/gitflow/internal/shell"
)

// DefaultNetworkRetries is how often fetch, pull and push are retried after a
// transient network failure.
const DefaultNetworkRetries = 3

const networkRetryMaxElapsed = 30 * time.Second

// transientMessages are lower-cased fragments of git output that point at a
// network problem rather than a repository problem.
var transientMessages = []string{
	"could not resolve host",
	"connection timed out",
	"operation timed out",
	"connection reset",
	"connection refused",
	"the remote end hung up unexpectedly",
	"early eof",
	"the requested url returned error: 5",
}

// WithNetworkRetries sets how often network commands are retried. 0 disables
// retries.
func WithNetworkRetries(n int) Option {
	return func(repo *Repo) {
		if n >= 0 {
			repo.retries = n
		}
	}
}

// WithBackOff replaces the delay policy between network retries. Used by tests.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(repo *Repo) {
		if newBackOff != nil {
			repo.newBackOff = newBackOff
		}
	}
}

func newNetworkBackOff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = networkRetryMaxElapsed
	return bo
}

// IsTransient reports whether err is a git failure caused by the network.
func IsTransient(err error) bool {
	var cmdErr *shell.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	out := strings.ToLower(cmdErr.Output)
	for _, msg := range transientMessages {
		if strings.Contains(out, msg) {
			return true
		}
	}
	return false
}

// runNetwork is run for commands that talk to the remote. Transient failures
// are retried; any other failure stops immediately.
func (r *Repo) runNetwork(ctx context.Context, args ...string) (string, error) {
	if r.retries == 0 {
		return r.run(ctx, args...)
	}

	var out string
	op := func() error {
		var err error
		out, err = r.run(ctx, args...)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		r.log.Warnf("git %s failed (%v), retrying in %s", args[0], err, wait.Round(time.Millisecond))
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.retries)), ctx)
	err := backoff.RetryNotify(op, bo, notify)
	return out, err
}
