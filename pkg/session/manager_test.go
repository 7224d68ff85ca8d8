package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/aretw0/screenwalk/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SerializesDevice(t *testing.T) {
	mgr := session.NewManager()
	ctx := context.Background()

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithLock(ctx, "iPhone 15", func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning)
	assert.Equal(t, 0, mgr.Active(), "locks must be collected once released")
}

func TestManager_ReturnsBodyError(t *testing.T) {
	mgr := session.NewManager()
	boom := errors.New("boom")
	err := mgr.WithLock(context.Background(), "iPad", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type fakeLocker struct {
	mu       sync.Mutex
	locked   []string
	released []string
	ttl      time.Duration
	err      error
}

func (f *fakeLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.locked = append(f.locked, key)
	f.ttl = ttl
	f.mu.Unlock()
	return func(context.Context) error {
		f.mu.Lock()
		f.released = append(f.released, key)
		f.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLease(t *testing.T) {
	locker := &fakeLocker{}
	mgr := session.NewManager(session.WithLocker(locker), session.WithLeaseTTL(time.Minute))

	called := false
	err := mgr.WithLock(context.Background(), "iPhone 15", func(context.Context) error {
		called = true
		assert.Equal(t, []string{"iPhone 15"}, locker.locked)
		assert.Empty(t, locker.released)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []string{"iPhone 15"}, locker.released)
	assert.Equal(t, time.Minute, locker.ttl)
}

func TestManager_DistributedLeaseFailure(t *testing.T) {
	locker := &fakeLocker{err: context.DeadlineExceeded}
	mgr := session.NewManager(session.WithLocker(locker))

	called := false
	err := mgr.WithLock(context.Background(), "iPhone 15", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
	assert.Equal(t, 0, mgr.Active())
}
