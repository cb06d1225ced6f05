package retry

import (
	"errors"
	"math"
	"time"

	"spendwise/pkg/utils"
)

// Retryable marks an error as transient. A Policy re-invokes the operation
// only for errors wrapped in it; everything else propagates untouched.
type Retryable struct {
	Err error
}

func (e *Retryable) Error() string { return e.Err.Error() }

func (e *Retryable) Unwrap() error { return e.Err }

// Mark wraps err so a Policy will retry the operation that returned it.
func Mark(err error) error {
	if err == nil {
		return nil
	}
	return &Retryable{Err: err}
}

// IsRetryable reports whether err carries a Retryable anywhere in its chain.
func IsRetryable(err error) bool {
	var r *Retryable
	return errors.As(err, &r)
}

// Policy re-invokes a fallible operation with exponential backoff: after a
// retryable failure it sleeps Base^attempt seconds (attempt numbers starting
// at 0) before the next try, up to Attempts total tries. Exhaustion is logged
// and swallowed, which makes the policy suitable only for best-effort
// background work.
type Policy struct {
	Attempts int
	Base     float64

	// Sleep is swappable in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Default matches the backoff used for monobank sync: 3 attempts, base 2.
func Default() Policy {
	return Policy{Attempts: 3, Base: 2}
}

// Do runs fn under the policy. A non-retryable error is returned immediately.
// After Attempts retryable failures Do returns nil; the failures have already
// been logged with the operation name and args.
func (p Policy) Do(name string, fn func() error, args ...interface{}) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 0; attempt < p.Attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}

		sleep(time.Duration(math.Pow(p.Base, float64(attempt))) * time.Second)
		utils.Logger.Errorf("%s(args: %v) failed: %v ... retrying, attempt #%d", name, args, err, attempt+1)
	}

	return nil
}
