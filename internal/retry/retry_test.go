package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SucceedsAfterFailures(t *testing.T) {
	policy := NewRetryPolicy(3, time.Millisecond)

	calls := 0
	err := policy.Execute(context.Background(), func(attempt int) error {
		calls++
		assert.Equal(t, calls, attempt)
		if attempt < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_GivesUp(t *testing.T) {
	policy := NewRetryPolicy(2, time.Millisecond)
	sentinel := errors.New("still down")

	err := policy.Execute(context.Background(), func(int) error { return sentinel })

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
}

func TestExecute_StopsOnContextCancel(t *testing.T) {
	policy := NewRetryPolicy(5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- policy.Execute(ctx, func(int) error {
			calls++
			return errors.New("nope")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(time.Second):
		t.Fatal("Execute did not return after cancel")
	}
}

func TestNewRetryPolicy_MinimumOneAttempt(t *testing.T) {
	calls := 0
	_ = NewRetryPolicy(0, time.Millisecond).Execute(context.Background(), func(int) error {
		calls++
		return errors.New("x")
	})
	assert.Equal(t, 1, calls)
}

func TestWithMaxDelay_CapsEveryWait(t *testing.T) {
	policy := NewRetryPolicy(3, time.Hour).WithMaxDelay(5 * time.Millisecond)

	start := time.Now()
	err := policy.Execute(context.Background(), func(int) error { return errors.New("down") })

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
