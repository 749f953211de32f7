package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projectpulse/pulseauth/token/keys"
	"github.com/projectpulse/pulseauth/users"
)

// ErrInvalidToken is the single verification failure surfaced to
// callers. Granular reasons (expired, bad signature, wrong algorithm,
// issuer mismatch) are logged internally only, so a caller cannot use
// the codec as an oracle.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = 24 * time.Hour

// Codec issues and verifies RS256-signed tokens carrying identity
// claims. It is safe for concurrent use: the signer is immutable after
// construction and verification is a pure function of its input.
type Codec struct {
	signer   keys.Signer
	issuer   string
	audience string
	ttl      time.Duration
	nowFunc  func() time.Time
	logger   zerolog.Logger
}

type CodecOption func(*Codec)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		c.ttl = ttl
	}
}

func WithLogger(logger zerolog.Logger) CodecOption {
	return func(c *Codec) {
		c.logger = logger
	}
}

func NewCodec(signer keys.Signer, issuer, audience string, options ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("[NewCodec] signer is required")
	}
	if issuer == "" || audience == "" {
		return nil, errors.New("[NewCodec] issuer and audience are required")
	}

	c := &Codec{
		signer:   signer,
		issuer:   issuer,
		audience: audience,
		ttl:      DefaultTTL,
		nowFunc:  time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Issue builds and signs a token for the user. The claim set carries a
// freshly generated jti for traceability and expires at issued-at + ttl.
func (c *Codec) Issue(user *users.User) (string, error) {
	now := c.nowFunc()
	claims := &Claims{
		Email: user.Email,
		Name:  user.DisplayName(),
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			Subject:   strconv.Itoa(user.ID),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify decodes and cryptographically verifies a token string. The
// algorithm must be RS256 exactly, the signature must check out
// against the public key, and expiry is enforced with zero clock-skew
// tolerance: a token is invalid at its exact expiry instant. Issuer
// and audience must match the configured values.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{keys.RS256}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.nowFunc),
	)
	if err != nil {
		c.logger.Debug().Err(err).Msg("token verification failed")
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		c.logger.Debug().Msg("token parsed but not valid")
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsValid is a convenience wrapper around Verify that swallows
// verification errors into a boolean.
func (c *Codec) IsValid(tokenString string) bool {
	_, err := c.Verify(tokenString)
	return err == nil
}

// TTL returns the configured validity window for issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
