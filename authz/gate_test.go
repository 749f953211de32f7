package authz_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/projectpulse/pulseauth/authz"
	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/users"
)

func claimsFor(id string, role users.Role) *token.Claims {
	return &token.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		claims        *token.Claims
		action        authz.Action
		resourceOwner int
		want          bool
	}{
		{"admin can manage any project", claimsFor("1", users.RoleAdmin), authz.ProjectManage, 99, true},
		{"admin can manage any task", claimsFor("1", users.RoleAdmin), authz.TaskManage, 99, true},
		{"manager can manage own project", claimsFor("2", users.RoleProjectManager), authz.ProjectManage, 2, true},
		{"manager cannot manage another manager's project", claimsFor("2", users.RoleProjectManager), authz.ProjectManage, 3, false},
		{"manager can manage tasks in own project", claimsFor("2", users.RoleProjectManager), authz.TaskManage, 2, true},
		{"manager cannot manage tasks elsewhere", claimsFor("2", users.RoleProjectManager), authz.TaskManage, 7, false},
		{"assignee can update own task status", claimsFor("5", users.RoleTeamMember), authz.TaskStatusUpdate, 5, true},
		{"assignee can update own task progress", claimsFor("5", users.RoleTeamMember), authz.TaskProgressUpdate, 5, true},
		{"member cannot update someone else's task status", claimsFor("5", users.RoleTeamMember), authz.TaskStatusUpdate, 6, false},
		{"member cannot manage tasks even when assigned", claimsFor("5", users.RoleTeamMember), authz.TaskManage, 5, false},
		{"member cannot manage projects", claimsFor("5", users.RoleTeamMember), authz.ProjectManage, 5, false},
		{"member can read own profile", claimsFor("5", users.RoleTeamMember), authz.ProfileRead, 5, true},
		{"member can update own profile", claimsFor("5", users.RoleTeamMember), authz.ProfileUpdate, 5, true},
		{"member cannot update another profile", claimsFor("5", users.RoleTeamMember), authz.ProfileUpdate, 6, false},
		{"viewer cannot update anything", claimsFor("8", users.RoleViewer), authz.TaskStatusUpdate, 9, false},
		{"viewer may touch own profile", claimsFor("8", users.RoleViewer), authz.ProfileRead, 8, true},
		{"nil claims denied", nil, authz.ProjectRead, 1, false},
		{"non-numeric subject denied", claimsFor("abc", users.RoleAdmin), authz.ProjectManage, 1, false},
		{"unknown role denied", claimsFor("9", users.Role("Root")), authz.ProjectManage, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, authz.Decide(tt.claims, tt.action, tt.resourceOwner))
		})
	}
}

func TestCanRead(t *testing.T) {
	require.True(t, authz.CanRead(claimsFor("1", users.RoleViewer)))
	require.True(t, authz.CanRead(claimsFor("1", users.RoleTeamMember)))
	require.False(t, authz.CanRead(claimsFor("1", users.Role("Root"))))
	require.False(t, authz.CanRead(nil))
}
