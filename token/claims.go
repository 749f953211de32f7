package token

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projectpulse/pulseauth/users"
)

// Claims is the decoded, verified payload of a token. Claims are
// populated once at decode time; call sites never look values up by
// string key.
type Claims struct {
	Email string     `json:"email,omitempty"`
	Name  string     `json:"name,omitempty"`
	Role  users.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject id, or 0 when the subject claim
// is missing or not numeric.
func (c *Claims) UserID() int {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0
	}
	return id
}

// TokenID returns the jti claim carried for traceability.
func (c *Claims) TokenID() string {
	return c.ID
}
