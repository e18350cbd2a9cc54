package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryDenylist is a process-local token denylist for tests and
// single-instance deployments.
type InMemoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	clock   func() time.Time
}

func NewInMemoryDenylist() *InMemoryDenylist {
	return &InMemoryDenylist{
		revoked: make(map[string]time.Time),
		clock:   time.Now,
	}
}

// WithClock overrides the time source for expiry tests.
func (d *InMemoryDenylist) WithClock(clock func() time.Time) *InMemoryDenylist {
	d.clock = clock
	return d
}

func (d *InMemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = d.clock().Add(ttl)
	return nil
}

func (d *InMemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	d.mu.RLock()
	expiresAt, ok := d.revoked[jti]
	d.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if d.clock().After(expiresAt) {
		d.mu.Lock()
		delete(d.revoked, jti)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
