package users

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repo lookups when no user matches.
var ErrNotFound = errors.New("user not found")

// UserRepo is the narrow contract the auth core depends on. The full
// entity graph (projects, tasks, comments) lives with the owning service.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	// IsEmailUnique reports whether no user other than excludeID uses the
	// email. Comparison is case-insensitive. Pass excludeID 0 to check
	// against every user.
	IsEmailUnique(ctx context.Context, email string, excludeID int) (bool, error)
	Insert(ctx context.Context, user *User) (*User, error)
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
	Count(ctx context.Context) (int, error)
}
