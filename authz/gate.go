// Package authz decides per-request whether a caller with verified
// claims may perform an action on a resource. Decisions are stateless
// and pure: nothing is cached and nothing is looked up, the caller
// supplies the owning user id for resource-scoped actions.
package authz

import (
	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/users"
)

// Action is a policy-relevant operation on a project/task resource.
type Action string

const (
	ProjectRead        Action = "project:read"
	ProjectManage      Action = "project:manage" // update, delete, membership changes
	TaskRead           Action = "task:read"
	TaskManage         Action = "task:manage" // update, delete, assign
	TaskStatusUpdate   Action = "task:status"
	TaskProgressUpdate Action = "task:progress"
	ProfileRead        Action = "profile:read"
	ProfileUpdate      Action = "profile:update"
)

// selfServiceActions are the restricted subset a caller may perform on
// resources that belong to them (own profile, tasks assigned to them).
var selfServiceActions = map[Action]struct{}{
	TaskRead:           {},
	TaskStatusUpdate:   {},
	TaskProgressUpdate: {},
	ProfileRead:        {},
	ProfileUpdate:      {},
}

// managerActions are project/task management actions a ProjectManager
// may perform on resources they manage.
var managerActions = map[Action]struct{}{
	ProjectRead:        {},
	ProjectManage:      {},
	TaskRead:           {},
	TaskManage:         {},
	TaskStatusUpdate:   {},
	TaskProgressUpdate: {},
}

// Decide reports whether the caller may perform action on the resource
// owned or managed by resourceOwnerID. For project actions the owner is
// the project's manager id; for task actions it is the assignee id (or
// the managing user's id for management actions). Precedence:
//
//  1. Admin is always permitted.
//  2. ProjectManager is permitted for management actions on resources
//     they manage. The grant is scoped to the specific resource; a
//     manager id mismatch is a denial.
//  3. Self-access: a caller may perform the restricted self-service
//     subset on their own resources.
//  4. Everything else is denied.
func Decide(claims *token.Claims, action Action, resourceOwnerID int) bool {
	if claims == nil {
		return false
	}
	callerID := claims.UserID()
	if callerID == 0 {
		return false
	}

	switch claims.Role {
	case users.RoleAdmin:
		return true
	case users.RoleProjectManager:
		if _, ok := managerActions[action]; ok && resourceOwnerID == callerID {
			return true
		}
	}

	if _, ok := selfServiceActions[action]; ok && resourceOwnerID == callerID {
		return true
	}
	return false
}

// CanRead is the read-only gate: any authenticated caller with a known
// role may list and read projects and tasks.
func CanRead(claims *token.Claims) bool {
	return claims != nil && users.ValidRole(claims.Role)
}
