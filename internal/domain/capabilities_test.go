package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminCapabilities(t *testing.T) {
	admin := &User{ID: "1", Role: RoleAdmin}
	member := &User{ID: "2", Role: RoleMember}

	checks := []struct {
		name string
		fn   func(*User) bool
	}{
		{"CanManageUsers", CanManageUsers},
		{"CanCreateProject", CanCreateProject},
		{"CanDeleteProject", CanDeleteProject},
		{"CanCreateTask", CanCreateTask},
		{"CanDeleteTask", CanDeleteTask},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, c.fn(admin))
			assert.False(t, c.fn(member))
			assert.False(t, c.fn(nil))
		})
	}
}

func TestCanComment(t *testing.T) {
	assert.True(t, CanComment(&User{ID: "1", Role: RoleMember}))
	assert.True(t, CanComment(&User{ID: "2", Role: RoleAdmin}))
	assert.False(t, CanComment(nil))
}

func TestCanEditComment(t *testing.T) {
	author := &User{ID: "1", Role: RoleMember}
	admin := &User{ID: "2", Role: RoleAdmin}
	comment := &Comment{ID: "c1", UserID: "1"}

	assert.True(t, CanEditComment(author, comment))

	// Even admins cannot touch someone else's comment
	assert.False(t, CanEditComment(admin, comment))

	assert.False(t, CanEditComment(nil, comment))
	assert.False(t, CanEditComment(author, nil))
}
