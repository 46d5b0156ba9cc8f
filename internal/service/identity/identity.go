package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

// Service registers and authenticates users.
type Service struct {
	users            userRepository
	hasher           passwordHasher
	tokens           tokenIssuer
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates an identity Service.
func NewService(users userRepository, hasher passwordHasher, tokens tokenIssuer, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		users:            users,
		hasher:           hasher,
		tokens:           tokens,
		logger:           logger.With(logx.String("component", "identity")),
		operationTimeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Register creates a client account.
func (s *Service) Register(ctx context.Context, r domain.Registration) (int64, error) {
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.NationalID == "" || r.Email == "" || r.FirstName == "" || r.LastName == "" || r.Password == "" {
		return 0, apperr.ErrInvalid
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.users.Create(ctx, &domain.NewUser{
		Role:         domain.RoleClient,
		NationalID:   &r.NationalID,
		Email:        &r.Email,
		Phone:        strings.TrimSpace(r.Phone),
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    r.BirthDate,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, apperr.FromContext("register", fmt.Errorf("register: %w", err))
	}

	s.logger.Info("client registered", logx.String("event", "user_registered"), logx.Int64("user_id", id))
	return id, nil
}

// Authenticate checks the credentials and opens a session.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, loginKey, password string) (domain.Session, error) {
	loginKey = strings.TrimSpace(loginKey)
	if loginKey == "" || password == "" {
		return domain.Session{}, apperr.ErrAuth
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.users.FindByLoginKey(ctx, loginKey)
	if err != nil {
		return domain.Session{}, apperr.FromContext("login", fmt.Errorf("login: %w", err))
	}
	if u == nil {
		s.logger.Warn("login failed", logx.String("reason", "unknown user"))
		return domain.Session{}, apperr.ErrAuth
	}
	if !s.hasher.Check(password, u.PasswordHash) {
		s.logger.Warn("login failed", logx.String("reason", "password mismatch"), logx.Int64("user_id", u.ID))
		return domain.Session{}, apperr.ErrAuth
	}

	token, exp, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in",
		logx.String("event", "user_logged_in"),
		logx.Int64("user_id", u.ID),
		logx.String("role", string(u.Role)),
	)
	return domain.Session{
		UserID:    u.ID,
		Role:      u.Role,
		Name:      u.DisplayName(),
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// CreateUser creates an account of any role on behalf of an administrator.
func (s *Service) CreateUser(ctx context.Context, d domain.UserDraft) (int64, error) {
	if !d.Role.Valid() {
		return 0, apperr.ErrInvalid
	}
	d.NationalID = trimmedOrNil(d.NationalID)
	d.Username = trimmedOrNil(d.Username)
	d.Email = trimmedOrNil(d.Email)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	if d.NationalID == nil && d.Username == nil && d.Email == nil {
		return 0, apperr.ErrInvalid
	}
	if d.FirstName == "" || d.LastName == "" || d.Password == "" {
		return 0, apperr.ErrInvalid
	}

	hash, err := s.hasher.Hash(d.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.users.Create(ctx, &domain.NewUser{
		Role:         d.Role,
		NationalID:   d.NationalID,
		Username:     d.Username,
		Email:        d.Email,
		Phone:        strings.TrimSpace(d.Phone),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, apperr.FromContext("create user", fmt.Errorf("create user: %w", err))
	}

	s.logger.Info("user created",
		logx.String("event", "user_created"),
		logx.Int64("user_id", id),
		logx.String("role", string(d.Role)),
	)
	return id, nil
}

// DeleteUser removes an account. Users referenced by a request cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.users.Delete(ctx, id); err != nil {
		return apperr.FromContext("delete user", fmt.Errorf("delete user %d: %w", id, err))
	}
	s.logger.Info("user deleted", logx.String("event", "user_deleted"), logx.Int64("user_id", id))
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
