package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/projectpulse/pulseauth/internal/config"
	"github.com/projectpulse/pulseauth/users"
)

// InitialiseSystem seeds an admin user when the store is empty so a
// fresh deployment can be administered. Returns without touching the
// store when any user already exists.
func (s *Server) InitialiseSystem(ctx context.Context, cfg config.Config) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := cfg.GetSeedAdminPassword()
	generated := false
	if password == "" {
		password, err = generatePassword()
		if err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to generate admin password: %w", err)
		}
		generated = true
	}

	hasher := users.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to hash admin password: %w", err)
	}

	admin := &users.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        cfg.GetSeedAdminEmail(),
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		IsActive:     true,
	}
	if _, err := s.userRepo.Insert(ctx, admin); err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to seed admin user: %w", err)
	}

	event := s.logger.Info().Str("email", admin.Email)
	if generated {
		// Printed once on first boot only; change it after first login.
		event = event.Str("password", password)
	}
	event.Msg("seeded admin user")
	return nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
