package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rosterd/internal/auth/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
)

// PostgresUserStore persists users in PostgreSQL. Uniqueness of login and
// contact is enforced by unique indexes; violations surface as
// sentinel.ErrAlreadyUsed so the service layer can translate them.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, login, contact, secret_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(user.ID),
		user.Login,
		user.Contact,
		user.SecretHash,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, login, contact, secret_hash, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *PostgresUserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT id, login, contact, secret_hash, created_at
		FROM users
		WHERE lower(login) = lower($1)
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, login))
}

func (s *PostgresUserStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *PostgresUserStore) scanUser(row *sql.Row) (*models.User, error) {
	var (
		user   models.User
		rawUID uuid.UUID
	)
	err := row.Scan(&rawUID, &user.Login, &user.Contact, &user.SecretHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.ID = id.UserID(rawUID)
	return &user, nil
}
