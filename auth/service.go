package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/users"
)

// SessionService translates user-facing auth actions into token
// lifecycle operations against the user store. All failures come back
// as a structured AuthResult; unexpected internal errors are logged
// with detail and surfaced as a generic failure, never a panic.
type SessionService struct {
	userRepo  users.UserRepo
	codec     *token.Codec
	hasher    users.Hasher
	validator *Validator
	nowTime   func() time.Time // nowTime function (injectable for testing)
	logger    zerolog.Logger
}

// SessionServiceOption defines a function type to modify the SessionService instance.
type SessionServiceOption func(*SessionService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		s.nowTime = nowFunc
	}
}

// WithHasher swaps the password hashing capability.
func WithHasher(h users.Hasher) SessionServiceOption {
	return func(s *SessionService) {
		s.hasher = h
	}
}

func WithServiceLogger(logger zerolog.Logger) SessionServiceOption {
	return func(s *SessionService) {
		s.logger = logger
	}
}

// NewSessionService initializes a new SessionService with required dependencies.
func NewSessionService(userRepo users.UserRepo, codec *token.Codec, options ...SessionServiceOption) (*SessionService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewSessionService] user repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewSessionService] token codec is required")
	}

	service := &SessionService{
		userRepo:  userRepo,
		codec:     codec,
		hasher:    users.NewBcryptHasher(),
		validator: NewValidator(),
		nowTime:   time.Now,
		logger:    zerolog.Nop(),
	}

	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Login verifies the credentials and issues a signed token. A missing
// account, an inactive account, and a wrong password all return the
// same generic failure to avoid account enumeration.
func (s *SessionService) Login(ctx context.Context, email, password string) AuthResult {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return failure(MsgInvalidCredentials)
		}
		s.logger.Error().Err(err).Msg("login: user lookup failed")
		return failure(MsgLoginInternalError, err.Error())
	}
	if !user.IsActive {
		return failure(MsgInvalidCredentials)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return failure(MsgInvalidCredentials)
	}

	now := s.nowTime().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Advisory metadata, last-write-wins; a failed update must not
		// block an otherwise valid login.
		s.logger.Warn().Err(err).Int("user_id", user.ID).Msg("login: last-login update failed")
	} else {
		user.LastLoginAt = &now
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("login: token issuance failed")
		return failure(MsgLoginInternalError, err.Error())
	}

	return success(MsgLoginSuccessful, signed, user.Summary())
}

// Register creates a new active TeamMember credential and issues a
// token immediately (auto-login after registration).
func (s *SessionService) Register(ctx context.Context, firstName, lastName, email, password, phone string) AuthResult {
	if errs := s.validator.ValidateRegistration(firstName, lastName, email, password); len(errs) > 0 {
		return failure("Registration details are invalid", errs...)
	}

	unique, err := s.userRepo.IsEmailUnique(ctx, email, 0)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: uniqueness check failed")
		return failure(MsgRegisterInternalError, err.Error())
	}
	if !unique {
		return failure(MsgEmailAlreadyTaken)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: password hashing failed")
		return failure(MsgRegisterInternalError, err.Error())
	}

	user := &users.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phone,
		Role:         users.RoleTeamMember,
		IsActive:     true,
		CreatedAt:    s.nowTime().UTC(),
	}
	user, err = s.userRepo.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: insert failed")
		return failure(MsgRegisterInternalError, err.Error())
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("register: token issuance failed")
		return failure(MsgRegisterInternalError, err.Error())
	}

	return success(MsgRegisterSuccessful, signed, user.Summary())
}

// Refresh validates the presented token, re-resolves the user record so
// role or email changes are reflected, and issues a brand-new token
// with a fresh expiration. There is no independent refresh-token
// mechanism: an expired access token cannot be refreshed.
func (s *SessionService) Refresh(ctx context.Context, tokenString string) AuthResult {
	user, err := s.CurrentUser(ctx, tokenString)
	if err != nil || user == nil {
		return failure(MsgInvalidToken)
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("refresh: token issuance failed")
		return failure(MsgInvalidToken)
	}
	return success("", signed, user.Summary())
}

// Logout is a no-op: tokens are stateless and there is no revocation
// list. The jti is logged so operators can correlate if needed.
func (s *SessionService) Logout(_ context.Context, tokenString string) {
	if claims, err := s.codec.Verify(tokenString); err == nil {
		s.logger.Debug().Str("jti", claims.TokenID()).Msg("logout (stateless, no-op)")
	}
}

// CurrentUser resolves the presented token to its user record. It
// returns (nil, InvalidAccessTokenErr) on any failure: malformed or
// expired token, unknown subject, or an inactive account.
func (s *SessionService) CurrentUser(ctx context.Context, tokenString string) (*users.User, error) {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, InvalidAccessTokenErr
	}

	id := claims.UserID()
	if id == 0 {
		return nil, InvalidAccessTokenErr
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil || !user.IsActive {
		return nil, InvalidAccessTokenErr
	}
	return user, nil
}

// IsTokenValid reports whether the token passes full verification.
func (s *SessionService) IsTokenValid(tokenString string) bool {
	return s.codec.IsValid(tokenString)
}

// VerifyToken exposes codec verification for the transport middleware.
func (s *SessionService) VerifyToken(tokenString string) (*token.Claims, error) {
	return s.codec.Verify(tokenString)
}
