package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDenylist(t *testing.T) {
	ctx := context.Background()

	t.Run("unrevoked token is not listed", func(t *testing.T) {
		d := NewInMemoryDenylist()
		revoked, err := d.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked token is listed until expiry", func(t *testing.T) {
		now := time.Now()
		d := NewInMemoryDenylist().WithClock(func() time.Time { return now })

		require.NoError(t, d.Revoke(ctx, "jti-1", time.Hour))

		revoked, err := d.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("entry expires with the token", func(t *testing.T) {
		now := time.Now()
		d := NewInMemoryDenylist().WithClock(func() time.Time { return now })
		require.NoError(t, d.Revoke(ctx, "jti-1", time.Hour))

		now = now.Add(2 * time.Hour)

		revoked, err := d.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("empty jti is a no-op", func(t *testing.T) {
		d := NewInMemoryDenylist()
		require.NoError(t, d.Revoke(ctx, "", time.Hour))

		revoked, err := d.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
