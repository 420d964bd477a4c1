package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/models"
)

func TestRules(t *testing.T) {
	alice := &auth.Principal{ID: 1, Username: "alice", Roles: models.Roles{models.RoleUser}}
	bob := &auth.Principal{ID: 2, Username: "bob", Roles: models.Roles{models.RoleUser}}
	admin := &auth.Principal{ID: 3, Username: "root", Roles: models.Roles{models.RoleUser, models.RoleAdmin}}
	task := &models.Task{ID: 10, UserID: alice.ID}

	tests := []struct {
		name     string
		decision Decision
		want     bool
	}{
		{"anonymous is not authenticated", RequireAuthenticated(nil), false},
		{"user is authenticated", RequireAuthenticated(alice), true},
		{"anonymous is not admin", RequireAdmin(nil), false},
		{"user is not admin", RequireAdmin(alice), false},
		{"admin is admin", RequireAdmin(admin), true},
		{"self can access own user", CanAccessUser(alice, alice.ID), true},
		{"other user cannot access user", CanAccessUser(bob, alice.ID), false},
		{"admin can access any user", CanAccessUser(admin, alice.ID), true},
		{"anonymous cannot access user", CanAccessUser(nil, alice.ID), false},
		{"owner can access task", CanAccessTask(alice, task), true},
		{"other user cannot access task", CanAccessTask(bob, task), false},
		{"admin can access any task", CanAccessTask(admin, task), true},
		{"anonymous cannot access task", CanAccessTask(nil, task), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.decision.Allowed())
		})
	}
}

func TestPredicates(t *testing.T) {
	p := &auth.Principal{ID: 7, Roles: models.Roles{models.RoleAdmin}}

	assert.True(t, IsAdmin(p))
	assert.False(t, IsAdmin(&auth.Principal{ID: 7}))
	assert.True(t, IsSelf(p, 7))
	assert.False(t, IsSelf(p, 8))
	assert.True(t, OwnsTask(p, &models.Task{UserID: 7}))
	assert.False(t, OwnsTask(p, nil))
}
