// Package audit implements the append-only mutation trail. Entries are
// written once and never updated or deleted by normal operation.
package audit

import (
	"time"

	id "rosterd/pkg/domain"
)

// Action classifies the record mutation an entry describes.
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionEdit   Action = "EDIT"
	ActionDelete Action = "DELETE"
)

// Entry captures one record mutation: who did it, a snapshot of the affected
// record's fields, and when. Keep it transport-agnostic so stores and sinks
// can fan out.
type Entry struct {
	ID         id.EntryID
	ActorID    id.UserID
	Name       string
	Email      string
	Department string
	Action     Action
	Timestamp  time.Time
}

// AttributedEntry is an Entry joined with the acting user's public identity
// for human-readable listings.
type AttributedEntry struct {
	Entry
	ActorLogin   string
	ActorContact string
}
