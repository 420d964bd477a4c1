// Package access holds the role and ownership rules that gate every user and
// task operation. The rules are pure: they never touch storage.
package access

import (
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/models"
)

// Decision is the outcome of an access check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool {
	return d == Allow
}

// IsAdmin reports whether the principal holds the ADMIN role.
func IsAdmin(p *auth.Principal) bool {
	return p != nil && p.Roles.Has(models.RoleAdmin)
}

// IsSelf reports whether the principal is the user identified by userID.
func IsSelf(p *auth.Principal, userID uint64) bool {
	return p != nil && p.ID == userID
}

// OwnsTask reports whether the principal is the task's owner.
func OwnsTask(p *auth.Principal, task *models.Task) bool {
	return p != nil && task != nil && task.UserID == p.ID
}

// RequireAuthenticated allows any present principal.
func RequireAuthenticated(p *auth.Principal) Decision {
	return Decision(p != nil)
}

// RequireAdmin allows administrators only.
func RequireAdmin(p *auth.Principal) Decision {
	return Decision(IsAdmin(p))
}

// CanAccessUser allows administrators and the user themselves.
func CanAccessUser(p *auth.Principal, userID uint64) Decision {
	return Decision(IsAdmin(p) || IsSelf(p, userID))
}

// CanAccessTask allows administrators and the task's owner.
func CanAccessTask(p *auth.Principal, task *models.Task) Decision {
	return Decision(IsAdmin(p) || OwnsTask(p, task))
}
