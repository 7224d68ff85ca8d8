package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/screenwalk/pkg/adapters/redis"
	"github.com/aretw0/screenwalk/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RedisLease(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	mgr := session.NewManager(
		session.WithLocker(redis.NewLocker(client, "screenwalk:")),
		session.WithLeaseTTL(time.Minute),
	)

	err = mgr.WithLock(context.Background(), "iPhone 15", func(context.Context) error {
		assert.True(t, mr.Exists("screenwalk:lock:iPhone 15"), "lease must be held while running")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("screenwalk:lock:iPhone 15"), "lease must be released")
}
