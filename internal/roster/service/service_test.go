package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterd/internal/audit"
	"rosterd/internal/platform/config"
	"rosterd/internal/roster/models"
	recordstore "rosterd/internal/roster/store/record"
	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/requestcontext"
)

// capturingRecorder collects emitted audit entries synchronously for
// assertions.
type capturingRecorder struct {
	entries []audit.Entry
}

func (c *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	c.entries = append(c.entries, entry)
}

func newTestService(t *testing.T, policy config.DeletePolicy) (*Service, *recordstore.InMemoryRecordStore, *capturingRecorder) {
	t.Helper()
	store := recordstore.New()
	recorder := &capturingRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, recorder, policy, logger, nil)
	return svc, store, recorder
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()

	t.Run("persists the record attributed to the actor", func(t *testing.T) {
		svc, store, _ := newTestService(t, config.DeleteAnyActor)

		record, err := svc.Create(ctx, "Bob Smith", "bob@example.com", "IT", actor)
		require.NoError(t, err)
		assert.False(t, record.ID.IsNil())
		require.NotNil(t, record.CreatorID)
		assert.Equal(t, actor, *record.CreatorID)

		stored, err := store.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bob Smith", stored.Name)
	})

	t.Run("emits an ADD entry after the write", func(t *testing.T) {
		svc, _, recorder := newTestService(t, config.DeleteAnyActor)

		_, err := svc.Create(ctx, "Bob Smith", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		require.Len(t, recorder.entries, 1)
		entry := recorder.entries[0]
		assert.Equal(t, audit.ActionAdd, entry.Action)
		assert.Equal(t, actor, entry.ActorID)
		assert.Equal(t, "Bob Smith", entry.Name)
		assert.Equal(t, "bob@example.com", entry.Email)
		assert.Equal(t, "IT", entry.Department)
	})

	t.Run("invalid input emits nothing", func(t *testing.T) {
		svc, store, recorder := newTestService(t, config.DeleteAnyActor)

		_, err := svc.Create(ctx, "", "bob@example.com", "IT", actor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = svc.Create(ctx, "Bob", "bob@example.com", "Engineering", actor)
		require.Error(t, err)

		assert.Empty(t, recorder.entries)
		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()

	t.Run("replaces fields and emits EDIT with new values", func(t *testing.T) {
		svc, _, recorder := newTestService(t, config.DeleteAnyActor)
		created, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		editor := id.NewUserID()
		updated, err := svc.Update(ctx, created.ID, "Robert", "robert@example.com", "HR", editor)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Robert", updated.Name)
		assert.Equal(t, models.DepartmentHR, updated.Department)
		// Creator attribution never changes on update.
		require.NotNil(t, updated.CreatorID)
		assert.Equal(t, actor, *updated.CreatorID)

		require.Len(t, recorder.entries, 2)
		entry := recorder.entries[1]
		assert.Equal(t, audit.ActionEdit, entry.Action)
		assert.Equal(t, editor, entry.ActorID)
		assert.Equal(t, "Robert", entry.Name)
		assert.Equal(t, "HR", entry.Department)
	})

	t.Run("unknown record is not found, nothing emitted", func(t *testing.T) {
		svc, _, recorder := newTestService(t, config.DeleteAnyActor)

		_, err := svc.Update(ctx, id.NewRecordID(), "Bob", "bob@example.com", "IT", actor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Empty(t, recorder.entries)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()

	t.Run("removes the record and emits DELETE with last-known fields", func(t *testing.T) {
		svc, store, recorder := newTestService(t, config.DeleteAnyActor)
		created, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID, actor))

		_, err = store.FindByID(ctx, created.ID)
		require.Error(t, err)

		require.Len(t, recorder.entries, 2)
		entry := recorder.entries[1]
		assert.Equal(t, audit.ActionDelete, entry.Action)
		assert.Equal(t, "Bob", entry.Name)
		assert.Equal(t, "bob@example.com", entry.Email)
		assert.Equal(t, "IT", entry.Department)
	})

	t.Run("any authenticated actor may delete under the default policy", func(t *testing.T) {
		svc, _, _ := newTestService(t, config.DeleteAnyActor)
		created, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID, id.NewUserID()))
	})

	t.Run("creator-only policy hides records from non-creators", func(t *testing.T) {
		svc, store, recorder := newTestService(t, config.DeleteCreatorOnly)
		created, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		err = svc.Delete(ctx, created.ID, id.NewUserID())
		require.Error(t, err)
		// Same answer as a missing record so existence does not leak.
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "record not found", dErrors.MessageOf(err))

		_, err = store.FindByID(ctx, created.ID)
		require.NoError(t, err, "record must survive the rejected delete")
		require.Len(t, recorder.entries, 1, "no DELETE entry for a rejected delete")
	})

	t.Run("creator-only policy lets the creator delete", func(t *testing.T) {
		svc, _, _ := newTestService(t, config.DeleteCreatorOnly)
		created, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID, actor))
	})

	t.Run("unknown record is not found", func(t *testing.T) {
		svc, _, _ := newTestService(t, config.DeleteAnyActor)
		err := svc.Delete(ctx, id.NewRecordID(), actor)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestNilAuditorNeverFailsMutations(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()
	store := recordstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, nil, config.DeleteAnyActor, logger, nil)

	record, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
	require.NoError(t, err)
	_, err = svc.Update(ctx, record.ID, "Robert", "bob@example.com", "HR", actor)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, record.ID, actor))
}

func TestAuditTimestampFromRequestTime(t *testing.T) {
	actor := id.NewUserID()
	svc, _, recorder := newTestService(t, config.DeleteAnyActor)

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	_, err := svc.Create(ctx, "Bob", "bob@example.com", "IT", actor)
	require.NoError(t, err)

	require.Len(t, recorder.entries, 1)
	assert.True(t, recorder.entries[0].Timestamp.Equal(fixed))
}

// TestMutationSequenceInvariants replays random mutation sequences and checks
// that every successful mutation produced exactly one audit entry and that the
// store ends in the state the sequence implies.
func TestMutationSequenceInvariants(t *testing.T) {
	ctx := context.Background()
	actor := id.NewUserID()
	rng := rand.New(rand.NewSource(1))
	departments := []string{"IT", "HR", "Finance", "Marketing", "Operations"}

	svc, store, recorder := newTestService(t, config.DeleteAnyActor)

	var live []id.RecordID
	mutations := 0

	for i := 0; i < 200; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			record, err := svc.Create(ctx, "Employee", "e@example.com", departments[rng.Intn(len(departments))], actor)
			require.NoError(t, err)
			live = append(live, record.ID)
			mutations++
		case op == 1:
			target := live[rng.Intn(len(live))]
			_, err := svc.Update(ctx, target, "Updated", "u@example.com", departments[rng.Intn(len(departments))], actor)
			require.NoError(t, err)
			mutations++
		default:
			idx := rng.Intn(len(live))
			require.NoError(t, svc.Delete(ctx, live[idx], actor))
			live = append(live[:idx], live[idx+1:]...)
			mutations++
		}
	}

	assert.Len(t, recorder.entries, mutations, "one audit entry per successful mutation")

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, len(live))
}
