package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// DefaultLeaseTTL bounds how long a crashed runner can keep a device locked.
const DefaultLeaseTTL = 5 * time.Minute

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager hands out exclusive leases on devices.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.DistributedLocker // Optional distributed locker
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLeaseTTL sets the TTL of distributed leases.
func WithLeaseTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new device lease manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultLeaseTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(deviceID) after unlocking.
func (m *Manager) acquire(deviceID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[deviceID]
	if !exists {
		entry = &lockEntry{}
		m.locks[deviceID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[deviceID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, deviceID)
	}
}

// Active returns how many devices are leased or waited for.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// WithLock executes fn while holding the lease for the device.
func (m *Manager) WithLock(ctx context.Context, deviceID string, fn func(context.Context) error) error {
	entry := m.acquire(deviceID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(deviceID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, deviceID, m.ttl)
		if err != nil {
			return fmt.Errorf("failed to lease device %s: %w", deviceID, err)
		}
		defer func() {
			// The case context may be done already; release with a fresh one.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := unlock(releaseCtx); err != nil {
				m.logger.Warn("Failed to release device lease (will expire via TTL)",
					"device", deviceID,
					"err", err,
				)
			}
		}()
	}

	m.logger.Debug("device leased", "device", deviceID)
	return fn(ctx)
}
