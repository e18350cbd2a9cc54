//go:build integration

package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterd/internal/roster/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
	"rosterd/pkg/testutil/containers"
)

func seedUser(t *testing.T, pg *containers.PostgresContainer) id.UserID {
	t.Helper()
	userID := id.NewUserID()
	_, err := pg.DB.Exec(
		`INSERT INTO users (id, login, contact, secret_hash) VALUES ($1, $2, $3, $4)`,
		uuid.UUID(userID), "user-"+userID.String()[:8], userID.String()[:8]+"@example.com", "hash",
	)
	require.NoError(t, err)
	return userID
}

func TestPostgresRecordStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	ctx := context.Background()

	newRecord := func(creator id.UserID, name string, createdAt time.Time) *models.Record {
		c := creator
		return &models.Record{
			ID:         id.NewRecordID(),
			Name:       name,
			Email:      name + "@example.com",
			Department: models.DepartmentIT,
			CreatorID:  &c,
			CreatedAt:  createdAt,
		}
	}

	t.Run("create and find", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		creator := seedUser(t, pg)
		record := newRecord(creator, "bob", time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, store.Create(ctx, record))

		found, err := store.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.Name, found.Name)
		require.NotNil(t, found.CreatorID)
		assert.Equal(t, creator, *found.CreatorID)
	})

	t.Run("list is ordered by creation time", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		creator := seedUser(t, pg)
		base := time.Now().UTC().Truncate(time.Microsecond)

		require.NoError(t, store.Create(ctx, newRecord(creator, "second", base.Add(time.Second))))
		require.NoError(t, store.Create(ctx, newRecord(creator, "first", base)))

		records, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "first", records[0].Name)
		assert.Equal(t, "second", records[1].Name)
	})

	t.Run("update replaces mutable fields", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		creator := seedUser(t, pg)
		record := newRecord(creator, "bob", time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, store.Create(ctx, record))

		updated, err := store.Update(ctx, record.ID, models.Fields{
			Name: "Robert", Email: "robert@example.com", Department: models.DepartmentHR,
		})
		require.NoError(t, err)
		assert.Equal(t, "Robert", updated.Name)
		assert.Equal(t, models.DepartmentHR, updated.Department)
		require.NotNil(t, updated.CreatorID)
		assert.Equal(t, creator, *updated.CreatorID)

		_, err = store.Update(ctx, id.NewRecordID(), models.Fields{
			Name: "x", Email: "x@example.com", Department: models.DepartmentIT,
		})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("delete returns the last-known state", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		creator := seedUser(t, pg)
		record := newRecord(creator, "bob", time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, store.Create(ctx, record))

		snapshot, err := store.Delete(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", snapshot.Name)

		_, err = store.FindByID(ctx, record.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		_, err = store.Delete(ctx, record.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("removing the creator clears attribution but keeps the record", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))
		creator := seedUser(t, pg)
		record := newRecord(creator, "bob", time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, store.Create(ctx, record))

		_, err := pg.DB.Exec(`DELETE FROM users WHERE id = $1`, uuid.UUID(creator))
		require.NoError(t, err)

		found, err := store.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Nil(t, found.CreatorID)
	})
}
