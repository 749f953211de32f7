package users

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// WorkFactor is the bcrypt cost used for every stored password hash.
const WorkFactor = 12

// Hasher is the password hashing capability used by the session service.
// Keeping it behind an interface lets the adaptive algorithm be swapped
// without touching calling code.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt with a fixed work factor.
type BcryptHasher struct {
	cost int
}

var _ Hasher = BcryptHasher{}

func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{cost: WorkFactor}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	cost := h.cost
	if cost == 0 {
		cost = WorkFactor
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash")
	}
	return string(bytes), nil
}

func (h BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
