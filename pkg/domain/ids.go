// Package domain holds the typed identifiers shared across services.
//
// Each identifier is a distinct type over uuid.UUID so the compiler rejects
// cross-type assignment (a RecordID can never be passed where a UserID is
// expected). Parse functions enforce the trust-boundary invariant that IDs
// are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "rosterd/pkg/domain-errors"
)

// UserID identifies a registered user.
type UserID uuid.UUID

// RecordID identifies an employee record.
type RecordID uuid.UUID

// EntryID identifies an audit log entry.
type EntryID uuid.UUID

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id RecordID) String() string { return uuid.UUID(id).String() }
func (id EntryID) String() string  { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id RecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders IDs in canonical UUID form so JSON encoding produces
// strings, not byte arrays.
func (id UserID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id RecordID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id EntryID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *RecordID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = RecordID(u)
	return nil
}

func (id *EntryID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = EntryID(u)
	return nil
}

// NewUserID returns a freshly generated user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewRecordID returns a freshly generated record ID.
func NewRecordID() RecordID { return RecordID(uuid.New()) }

// NewEntryID returns a freshly generated audit entry ID.
func NewEntryID() EntryID { return EntryID(uuid.New()) }

// ParseUserID parses a string into a UserID, rejecting empty, malformed,
// and nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseRecordID parses a string into a RecordID, rejecting empty, malformed,
// and nil UUIDs.
func ParseRecordID(s string) (RecordID, error) {
	u, err := parse(s)
	if err != nil {
		return RecordID{}, err
	}
	return RecordID(u), nil
}

// ParseEntryID parses a string into an EntryID, rejecting empty, malformed,
// and nil UUIDs.
func ParseEntryID(s string) (EntryID, error) {
	u, err := parse(s)
	if err != nil {
		return EntryID{}, err
	}
	return EntryID(u), nil
}

func parse(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
