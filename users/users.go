package users

import (
	"fmt"
	"time"
	"unicode"
)

// Role represents a user's system-wide role
type Role string

const (
	RoleAdmin          Role = "Admin"          // Full access to every resource
	RoleProjectManager Role = "ProjectManager" // Manages projects and their tasks
	RoleTeamMember     Role = "TeamMember"     // Works on assigned tasks
	RoleViewer         Role = "Viewer"         // Read-only access
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamMember, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           int        `json:"id,omitempty"`         // Unique identifier for the user
	Email        string     `json:"email,omitempty"`      // User's email address
	PasswordHash string     `json:"-"`                    // Hashed version of the user's password - never serialize
	FirstName    string     `json:"first_name,omitempty"` // First name of the user
	LastName     string     `json:"last_name,omitempty"`  // Last name of the user
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Role         Role       `json:"role,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// DisplayName returns the name carried in the token's name claim.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Summary is the sanitized view of a user returned to callers.
// It never carries the password hash.
type Summary struct {
	ID          int        `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		}
		if unicode.IsLower(char) {
			hasLower = true
		}
		if unicode.IsNumber(char) {
			hasNumber = true
		}
	}

	if !hasUpper || !hasLower {
		return fmt.Errorf("password must contain both uppercase and lowercase letters")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
