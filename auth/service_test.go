package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/projectpulse/pulseauth/auth"
	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/token/keys"
	"github.com/projectpulse/pulseauth/users"
	fakeuserrepo "github.com/projectpulse/pulseauth/users/repofake"
)

const (
	testIssuer    = "ProjectPulse"
	testAudience  = "ProjectPulse"
	testEmail     = "john.doe@example.com"
	testPassword  = "Password123"
	testFirstName = "John"
	testLastName  = "Doe"
	testPhone     = "+44 1234 567890"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	codec    *token.Codec
	service  *auth.SessionService
	now      time.Time
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo: fakeuserrepo.NewFakeUserRepo(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	nowFunc := func() time.Time { return f.now }

	kp, err := keys.GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	f.codec, err = token.NewCodec(keys.NewKeyPairSigner(kp), testIssuer, testAudience,
		token.WithNowFunc(nowFunc),
	)
	require.NoError(t, err)

	f.service, err = auth.NewSessionService(f.userRepo, f.codec, auth.WithNowTime(nowFunc))
	require.NoError(t, err)
	return f
}

// registerTestUser registers the standard test user and returns the result
func (f *testFixture) registerTestUser(t *testing.T) auth.AuthResult {
	t.Helper()
	result := f.service.Register(context.Background(), testFirstName, testLastName, testEmail, testPassword, testPhone)
	require.True(t, result.Success, "registration failed: %s %v", result.Message, result.Errors)
	return result
}

func TestRegisterIssuesTokenAndDefaultsRole(t *testing.T) {
	f := setupTestFixture(t)

	result := f.registerTestUser(t)
	require.Equal(t, auth.MsgRegisterSuccessful, result.Message)
	require.NotEmpty(t, result.Token)
	require.NotNil(t, result.User)
	require.Equal(t, users.RoleTeamMember, result.User.Role)
	require.True(t, result.User.IsActive)

	claims, err := f.codec.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID())
	require.Equal(t, users.RoleTeamMember, claims.Role)
}

func TestRegisterThenLogin(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	result := f.service.Login(context.Background(), testEmail, testPassword)
	require.True(t, result.Success)
	require.Equal(t, auth.MsgLoginSuccessful, result.Message)
	require.NotEmpty(t, result.Token)

	claims, err := f.codec.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.UserID())
	require.Equal(t, testEmail, claims.Email)

	// The sanitized summary never carries a password hash, and the
	// last-login timestamp is recorded.
	require.NotNil(t, result.User.LastLoginAt)
	require.Equal(t, f.now, result.User.LastLoginAt.UTC())
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	result := f.service.Register(context.Background(), "Johnny", "Dupe", "JOHN.DOE@Example.COM", testPassword, "")
	require.False(t, result.Success)
	require.Equal(t, auth.MsgEmailAlreadyTaken, result.Message)

	count, err := f.userRepo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := setupTestFixture(t)

	result := f.service.Register(context.Background(), testFirstName, testLastName, testEmail, "short", "")
	require.False(t, result.Success)
	require.NotEmpty(t, result.Errors)

	count, err := f.userRepo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	// Wrong password for an existing account.
	wrongPassword := f.service.Login(context.Background(), testEmail, "WrongPassword1")
	require.False(t, wrongPassword.Success)
	require.Equal(t, auth.MsgInvalidCredentials, wrongPassword.Message)
	require.Empty(t, wrongPassword.Token)

	// No such account at all: the message must not reveal the difference.
	noSuchUser := f.service.Login(context.Background(), "nobody@example.com", testPassword)
	require.False(t, noSuchUser.Success)
	require.Equal(t, wrongPassword.Message, noSuchUser.Message)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	user, err := f.userRepo.FindByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	_, err = f.userRepo.Insert(context.Background(), user)
	require.NoError(t, err)

	result := f.service.Login(context.Background(), testEmail, testPassword)
	require.False(t, result.Success)
	require.Equal(t, auth.MsgInvalidCredentials, result.Message)
}

func TestRefreshIssuesNewTokenWithLaterExpiry(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	t1Claims, err := f.codec.Verify(registered.Token)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	result := f.service.Refresh(context.Background(), registered.Token)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Token)
	require.NotEqual(t, registered.Token, result.Token)

	t2Claims, err := f.codec.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, t1Claims.UserID(), t2Claims.UserID())
	require.True(t, t2Claims.ExpiresAt.After(t1Claims.ExpiresAt.Time))
}

func TestRefreshReflectsRoleChanges(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	user, err := f.userRepo.FindByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	user.Role = users.RoleProjectManager
	_, err = f.userRepo.Insert(context.Background(), user)
	require.NoError(t, err)

	result := f.service.Refresh(context.Background(), registered.Token)
	require.True(t, result.Success)

	claims, err := f.codec.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, users.RoleProjectManager, claims.Role)
}

func TestRefreshRequiresStillValidToken(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	f.now = f.now.Add(token.DefaultTTL) // exactly at expiry
	result := f.service.Refresh(context.Background(), registered.Token)
	require.False(t, result.Success)
	require.Equal(t, auth.MsgInvalidToken, result.Message)

	malformed := f.service.Refresh(context.Background(), "not.a.token")
	require.False(t, malformed.Success)
}

func TestCurrentUser(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	user, err := f.service.CurrentUser(context.Background(), registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, user.ID)
	require.Equal(t, testEmail, user.Email)

	_, err = f.service.CurrentUser(context.Background(), "garbage")
	require.ErrorIs(t, err, auth.InvalidAccessTokenErr)

	// An account deactivated after issuance no longer resolves.
	user.IsActive = false
	_, err = f.userRepo.Insert(context.Background(), user)
	require.NoError(t, err)
	_, err = f.service.CurrentUser(context.Background(), registered.Token)
	require.ErrorIs(t, err, auth.InvalidAccessTokenErr)
}

func TestLogoutIsStatelessNoOp(t *testing.T) {
	f := setupTestFixture(t)
	registered := f.registerTestUser(t)

	f.service.Logout(context.Background(), registered.Token)

	// No revocation list exists: the token stays valid until expiry.
	require.True(t, f.service.IsTokenValid(registered.Token))
}
