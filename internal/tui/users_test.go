package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

func newUserList(t *testing.T) (*store.Store, UserListModel) {
	t.Helper()

	s := store.New()
	s.Seed(store.DemoData())
	require.True(t, s.Login("alice@company.com", "pw"))
	s.SetCurrentView(domain.ViewUsers)
	return s, NewUserListModel(s, s.Snapshot())
}

func TestUserListModel_Items(t *testing.T) {
	_, ul := newUserList(t)

	items := ul.list.Items()
	require.Len(t, items, 4)

	first, ok := items[0].(userItem)
	require.True(t, ok)
	assert.Equal(t, "Alice Martin", first.user.Name)
	assert.True(t, first.isSelf)

	// Alice has tasks 3 (todo) and 5 (done): one open
	assert.Equal(t, 1, first.openTasks)
}

func TestUserListModel_FilterMatchesNameAndEmail(t *testing.T) {
	_, ul := newUserList(t)

	item := ul.list.Items()[1].(userItem)
	assert.Contains(t, item.FilterValue(), "Bob Dubois")
	assert.Contains(t, item.FilterValue(), "bob@company.com")
}

func TestUserListModel_CreateUser(t *testing.T) {
	s, ul := newUserList(t)

	model, _ := ul.Update(keyRunes('n'))
	ul = model.(UserListModel)
	require.True(t, ul.editing)

	ul.inputs[0].SetValue("Eve Moreau")
	ul.inputs[1].SetValue("eve@company.com")
	ul.role = domain.RoleMember
	ul.focus = userFormFieldCount + 1

	model, _ = ul.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ul = model.(UserListModel)
	assert.False(t, ul.editing)

	snap := s.Snapshot()
	require.Len(t, snap.Users, 5)
	created := snap.Users[4]
	assert.Equal(t, "Eve Moreau", created.Name)
	assert.Equal(t, domain.RoleMember, created.Role)
	assert.NotEmpty(t, created.ID)

	// The new account can log in immediately
	s.Logout()
	assert.True(t, s.Login("eve@company.com", "pw"))
}

func TestUserListModel_EditRole(t *testing.T) {
	s, ul := newUserList(t)

	// Move to bob and open the edit form
	model, _ := ul.Update(keyRunes('j'))
	ul = model.(UserListModel)
	model, _ = ul.Update(keyRunes('e'))
	ul = model.(UserListModel)
	require.True(t, ul.editing)
	assert.Equal(t, "2", ul.editID)

	ul.role = toggleRole(ul.role)
	ul.focus = userFormFieldCount + 1
	model, _ = ul.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ul = model.(UserListModel)

	u := s.Snapshot().UserByID("2")
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestUserListModel_DeleteUser(t *testing.T) {
	s, ul := newUserList(t)

	model, _ := ul.Update(keyRunes('j'))
	ul = model.(UserListModel)
	model, _ = ul.Update(keyRunes('d'))
	ul = model.(UserListModel)
	require.True(t, ul.confirmingDelete)
	assert.Equal(t, "2", ul.deleteTarget.ID)

	model, _ = ul.Update(keyRunes('y'))
	ul = model.(UserListModel)

	snap := s.Snapshot()
	assert.Len(t, snap.Users, 3)
	assert.Nil(t, snap.UserByID("2"))

	// Bob's task assignment dangles rather than cascading
	task := snap.TaskByID("2")
	require.NotNil(t, task)
	assert.Equal(t, "2", task.AssignedTo)
}

func TestToggleRole(t *testing.T) {
	assert.Equal(t, domain.RoleMember, toggleRole(domain.RoleAdmin))
	assert.Equal(t, domain.RoleAdmin, toggleRole(domain.RoleMember))
}
