package audit

import (
	"context"

	id "rosterd/pkg/domain"
)

// Directory resolves an actor ID to its public identity for attribution.
// The postgres store joins in SQL instead; this exists for stores without a
// native join (memory).
type Directory interface {
	LookupActor(ctx context.Context, userID id.UserID) (login string, contact string, err error)
}

// DirectoryFunc adapts a closure to the Directory interface.
type DirectoryFunc func(ctx context.Context, userID id.UserID) (string, string, error)

func (f DirectoryFunc) LookupActor(ctx context.Context, userID id.UserID) (string, string, error) {
	return f(ctx, userID)
}
