package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"rosterd/internal/audit"
	id "rosterd/pkg/domain"
)

// Store persists audit entries in PostgreSQL. The audit_log table is
// append-only: no update or delete statements exist in this package, and the
// actor foreign key is ON DELETE RESTRICT so history cannot be orphaned.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, name, email, department, action, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(entry.ID),
		uuid.UUID(entry.ActorID),
		entry.Name,
		entry.Email,
		entry.Department,
		string(entry.Action),
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListAll returns every entry joined with the acting user's login and
// contact, ordered by timestamp descending. Newest-first ordering is part of
// the listing contract, not incidental.
func (s *Store) ListAll(ctx context.Context) ([]audit.AttributedEntry, error) {
	query := `
		SELECT a.id, a.actor_id, a.name, a.email, a.department, a.action, a.timestamp,
		       u.login, u.contact
		FROM audit_log a
		JOIN users u ON u.id = a.actor_id
		ORDER BY a.timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.AttributedEntry
	for rows.Next() {
		var (
			ae         audit.AttributedEntry
			rawEntryID uuid.UUID
			rawActorID uuid.UUID
			action     string
		)
		err := rows.Scan(
			&rawEntryID,
			&rawActorID,
			&ae.Name,
			&ae.Email,
			&ae.Department,
			&action,
			&ae.Timestamp,
			&ae.ActorLogin,
			&ae.ActorContact,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		ae.ID = id.EntryID(rawEntryID)
		ae.ActorID = id.UserID(rawActorID)
		ae.Action = audit.Action(action)
		entries = append(entries, ae)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
