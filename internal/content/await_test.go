package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitReturnsResult(t *testing.T) {
	clock := clockwork.NewFakeClock()

	got, err := Await(clock, time.Second, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestAwaitPassesErrorThrough(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cause := errors.New("bucket down")

	_, err := Await(clock, time.Second, func() (string, error) { return "", cause })
	assert.ErrorIs(t, err, cause)
}

func TestAwaitDiscardsLateResult(t *testing.T) {
	clock := clockwork.NewFakeClock()
	release := make(chan struct{})
	finished := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := Await(clock, 2*time.Second, func() ([]GamePost, error) {
			defer close(finished)
			<-release
			return []GamePost{{Object: Object{ID: "late"}}}, nil
		})
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Second)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrDeadline)
	case <-ctx.Done():
		t.Fatal("Await did not return after the deadline")
	}

	// the slow call was not interrupted and still runs to completion
	close(release)
	<-finished
}
