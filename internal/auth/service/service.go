package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"rosterd/internal/auth/models"
	"rosterd/internal/auth/secrets"
	"rosterd/internal/platform/metrics"
	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/platform/sentinel"
	"rosterd/pkg/requestcontext"
)

// UserStore is the persistence interface the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID id.UserID, login string, expiresIn time.Duration) (string, error)
}

// Service implements credential management: registration, login, and
// profile lookup. Registration doubles as an implicit login.
type Service struct {
	users    UserStore
	tokens   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewService(users UserStore, tokens TokenIssuer, tokenTTL time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		metrics:  m,
	}
}

// Register creates a new user and issues a session token. The raw secret is
// hashed before persistence and never logged.
func (s *Service) Register(ctx context.Context, login, contact, secret string) (*models.Session, error) {
	login = strings.TrimSpace(login)
	contact = strings.TrimSpace(contact)
	if login == "" || contact == "" || secret == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "all fields are required")
	}

	hash, err := secrets.Hash(secret)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, dErrors.New(dErrors.CodeValidation, "secret is not usable")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}

	user := &models.User{
		ID:         id.NewUserID(),
		Login:      login,
		Contact:    contact,
		SecretHash: hash,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "login or contact address already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}

	token, err := s.tokens.Issue(user.ID, user.Login, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"login", user.Login,
	)
	return &models.Session{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and issues a session token. Unknown login and
// wrong secret produce the same error so callers cannot enumerate logins.
func (s *Service) Login(ctx context.Context, login, secret string) (*models.Session, error) {
	if strings.TrimSpace(login) == "" || secret == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "login and secret are required")
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.invalidCredentials(ctx, login)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log in")
	}

	if err := secrets.Verify(secret, user.SecretHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, s.invalidCredentials(ctx, login)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log in")
	}

	token, err := s.tokens.Issue(user.ID, user.Login, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	return &models.Session{Token: token, User: user.Public()}, nil
}

// invalidCredentials is the single failure path for both unknown logins and
// wrong secrets, keeping the two indistinguishable to the caller.
func (s *Service) invalidCredentials(ctx context.Context, login string) error {
	if s.metrics != nil {
		s.metrics.LoginsFailed.Inc()
	}
	s.logger.WarnContext(ctx, "login failed",
		"login", login,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
}

// Profile returns the public fields of the authenticated user.
func (s *Service) Profile(ctx context.Context, userID id.UserID) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	public := user.Public()
	return &public, nil
}

// SeedDefaultAdmin inserts the bootstrap admin user when the store is empty,
// mirroring a fresh deployment's first-run behavior. Safe to call on every
// startup.
func (s *Service) SeedDefaultAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed admin user")
	}
	if count > 0 {
		return nil
	}

	hash, err := secrets.Hash("admin123")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed admin user")
	}
	admin := &models.User{
		ID:         id.NewUserID(),
		Login:      "admin",
		Contact:    "admin@example.com",
		SecretHash: hash,
		CreatedAt:  time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded already.
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed admin user")
	}
	s.logger.InfoContext(ctx, "seeded default admin user", "login", admin.Login)
	return nil
}
