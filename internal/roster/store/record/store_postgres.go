package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rosterd/internal/roster/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
)

// PostgresRecordStore persists records in PostgreSQL. The creator column is
// a weak reference (ON DELETE SET NULL): removing a user clears attribution
// on their records without cascading into record deletion.
type PostgresRecordStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

func (s *PostgresRecordStore) List(ctx context.Context) ([]models.Record, error) {
	query := `
		SELECT id, name, email, department, creator_id, created_at
		FROM records
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (s *PostgresRecordStore) Create(ctx context.Context, record *models.Record) error {
	query := `
		INSERT INTO records (id, name, email, department, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var creator *uuid.UUID
	if record.CreatorID != nil {
		c := uuid.UUID(*record.CreatorID)
		creator = &c
	}
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(record.ID),
		record.Name,
		record.Email,
		string(record.Department),
		creator,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresRecordStore) FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error) {
	query := `
		SELECT id, name, email, department, creator_id, created_at
		FROM records
		WHERE id = $1
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, uuid.UUID(recordID)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// Update persists new field values for an existing record. Zero rows
// affected means the record does not exist.
func (s *PostgresRecordStore) Update(ctx context.Context, recordID id.RecordID, fields models.Fields) (*models.Record, error) {
	query := `
		UPDATE records
		SET name = $2, email = $3, department = $4
		WHERE id = $1
		RETURNING id, name, email, department, creator_id, created_at
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query,
		uuid.UUID(recordID),
		fields.Name,
		fields.Email,
		string(fields.Department),
	).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a record, returning its last-known state for the audit
// snapshot. The DELETE ... RETURNING keeps lookup and removal atomic.
func (s *PostgresRecordStore) Delete(ctx context.Context, recordID id.RecordID) (*models.Record, error) {
	query := `
		DELETE FROM records
		WHERE id = $1
		RETURNING id, name, email, department, creator_id, created_at
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, uuid.UUID(recordID)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func scanRecord(scan func(dest ...any) error) (*models.Record, error) {
	var (
		record     models.Record
		rawID      uuid.UUID
		department string
		creator    *uuid.UUID
	)
	err := scan(&rawID, &record.Name, &record.Email, &department, &creator, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}
	record.ID = id.RecordID(rawID)
	record.Department = models.Department(department)
	if creator != nil {
		creatorID := id.UserID(*creator)
		record.CreatorID = &creatorID
	}
	return &record, nil
}
