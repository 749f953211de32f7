package auth

import "github.com/projectpulse/pulseauth/users"

// User-facing result messages. Login failures deliberately share one
// generic message so callers cannot tell a missing account from a wrong
// password or an inactive one.
const (
	MsgLoginSuccessful       = "Login successful"
	MsgRegisterSuccessful    = "Registration successful"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgEmailAlreadyTaken     = "Email is already registered"
	MsgInvalidToken          = "Invalid token"
	MsgLoginInternalError    = "An error occurred during login"
	MsgRegisterInternalError = "An error occurred during registration"
)

// AuthResult is the transient outcome of a session operation. It is
// returned to the caller and never persisted.
type AuthResult struct {
	Success bool           `json:"success"`
	Token   string         `json:"token,omitempty"`
	User    *users.Summary `json:"user,omitempty"`
	Message string         `json:"message,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
}

func failure(message string, errs ...string) AuthResult {
	return AuthResult{Success: false, Message: message, Errors: errs}
}

func success(message, token string, summary users.Summary) AuthResult {
	return AuthResult{Success: true, Message: message, Token: token, User: &summary}
}
