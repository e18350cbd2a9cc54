package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterd/internal/audit"
	id "rosterd/pkg/domain"
)

func fixedDirectory(known map[id.UserID][2]string) audit.Directory {
	return audit.DirectoryFunc(func(_ context.Context, userID id.UserID) (string, string, error) {
		if identity, ok := known[userID]; ok {
			return identity[0], identity[1], nil
		}
		return "", "", context.Canceled
	})
}

func TestListAll_NewestFirst(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()
	store := NewInMemoryStore(fixedDirectory(map[id.UserID][2]string{
		actor: {"alice", "alice@example.com"},
	}))

	base := time.Now()
	for i, action := range []audit.Action{audit.ActionAdd, audit.ActionEdit, audit.ActionDelete} {
		require.NoError(t, store.Append(ctx, audit.Entry{
			ID:        id.NewEntryID(),
			ActorID:   actor,
			Name:      "Bob",
			Action:    action,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, audit.ActionDelete, entries[0].Action)
	assert.Equal(t, audit.ActionEdit, entries[1].Action)
	assert.Equal(t, audit.ActionAdd, entries[2].Action)
}

func TestListAll_Attribution(t *testing.T) {
	ctx := context.Background()
	known := id.NewUserID()
	unknown := id.NewUserID()
	store := NewInMemoryStore(fixedDirectory(map[id.UserID][2]string{
		known: {"alice", "alice@example.com"},
	}))

	now := time.Now()
	require.NoError(t, store.Append(ctx, audit.Entry{
		ID: id.NewEntryID(), ActorID: known, Action: audit.ActionAdd, Timestamp: now,
	}))
	require.NoError(t, store.Append(ctx, audit.Entry{
		ID: id.NewEntryID(), ActorID: unknown, Action: audit.ActionEdit, Timestamp: now.Add(time.Second),
	}))

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Unresolvable actors keep empty attribution, the listing never fails.
	assert.Equal(t, "", entries[0].ActorLogin)
	assert.Equal(t, "alice", entries[1].ActorLogin)
	assert.Equal(t, "alice@example.com", entries[1].ActorContact)
}

func TestListAll_Empty(t *testing.T) {
	store := NewInMemoryStore(nil)
	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, store.Len())
}

func TestAppendIsStable(t *testing.T) {
	// Entries sharing a timestamp keep their append order after sorting.
	ctx := context.Background()
	store := NewInMemoryStore(nil)
	now := time.Now()

	first := id.NewEntryID()
	second := id.NewEntryID()
	require.NoError(t, store.Append(ctx, audit.Entry{ID: first, Timestamp: now}))
	require.NoError(t, store.Append(ctx, audit.Entry{ID: second, Timestamp: now}))

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].ID)
	assert.Equal(t, second, entries[1].ID)
}
