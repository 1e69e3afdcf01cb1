package content

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrDeadline = errors.New("content: deadline exceeded")

// Await runs call and waits at most timeout on clock for it. A call that
// outlives the deadline keeps running and its result is discarded.
func Await[T any](clock clockwork.Clock, timeout time.Duration, call func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{v: v, err: err}
	}()

	timer := clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.v, r.err
	case <-timer.Chan():
		var zero T
		return zero, ErrDeadline
	}
}
