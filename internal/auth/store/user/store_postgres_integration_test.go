//go:build integration

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterd/internal/auth/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
	"rosterd/pkg/testutil/containers"
)

func newPostgresUser(login, contact string) *models.User {
	return &models.User{
		ID:         id.NewUserID(),
		Login:      login,
		Contact:    contact,
		SecretHash: "$2a$10$fakehash",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgresUserStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		user := newPostgresUser("alice", "alice@example.com")
		require.NoError(t, store.Create(ctx, user))

		found, err := store.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Login, found.Login)
		assert.Equal(t, user.Contact, found.Contact)
		assert.Equal(t, user.SecretHash, found.SecretHash)

		byLogin, err := store.FindByLogin(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byLogin.ID)
	})

	t.Run("unknown lookups return ErrNotFound", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		_, err := store.FindByID(ctx, id.NewUserID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		_, err = store.FindByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unique violations surface as ErrAlreadyUsed", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		require.NoError(t, store.Create(ctx, newPostgresUser("alice", "alice@example.com")))

		err := store.Create(ctx, newPostgresUser("Alice", "other@example.com"))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)

		err = store.Create(ctx, newPostgresUser("other", "ALICE@example.com"))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("count", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		require.NoError(t, store.Create(ctx, newPostgresUser("alice", "alice@example.com")))
		require.NoError(t, store.Create(ctx, newPostgresUser("bob", "bob@example.com")))

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
