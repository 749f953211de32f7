package fakeuserrepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/projectpulse/pulseauth/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory users.UserRepo. Email lookups are
// case-insensitive, matching the Postgres implementation.
type FakeUserRepo struct {
	users    map[int]*users.User
	emailIds map[string]int // lowercased email to user id
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[int]*users.User),
		emailIds: make(map[string]int),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) FindByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return nil, users.ErrNotFound
	}
	u := *ur.users[id]
	return &u, nil
}

func (ur *FakeUserRepo) FindByID(_ context.Context, id int) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (ur *FakeUserRepo) IsEmailUnique(_ context.Context, email string, excludeID int) (bool, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return true, nil
	}
	return excludeID != 0 && id == excludeID, nil
}

func (ur *FakeUserRepo) Insert(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == 0 {
		user.ID = ur.nextID
		ur.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	ur.users[cp.ID] = &cp
	ur.emailIds[strings.ToLower(cp.Email)] = cp.ID
	return user, nil
}

func (ur *FakeUserRepo) UpdateLastLogin(_ context.Context, id int, at time.Time) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (ur *FakeUserRepo) Count(_ context.Context) (int, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users), nil
}
