package wait_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = wait.Options{Timeout: 200 * time.Millisecond, Interval: 5 * time.Millisecond}

func TestUntil_EventuallyTrue(t *testing.T) {
	calls := 0
	err := wait.Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_Timeout(t *testing.T) {
	err := wait.Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, domain.ErrWaitTimeout)
}

func TestUntil_ErrorAbortsImmediately(t *testing.T) {
	boom := errors.New("driver gone")
	calls := 0
	err := wait.Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		calls++
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestUntil_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wait.Until(ctx, fast, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
