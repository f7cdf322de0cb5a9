package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celine/taskdeck/internal/store"
)

func TestLoginModel_SuccessfulLogin(t *testing.T) {
	s := store.New()
	s.Seed(store.DemoData())

	login := NewLoginModel(s)
	login.email.SetValue("  alice@company.com  ")
	login.password.SetValue("anything")
	login.focus = 1

	model, cmd := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	login = model.(LoginModel)

	require.NotNil(t, cmd)
	assert.IsType(t, stateChangedMsg{}, cmd())

	snap := s.Snapshot()
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, "alice@company.com", snap.CurrentUser.Email)
}

func TestLoginModel_UnknownEmail(t *testing.T) {
	s := store.New()
	s.Seed(store.DemoData())

	login := NewLoginModel(s)
	login.email.SetValue("nobody@company.com")
	login.focus = 1

	model, cmd := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	login = model.(LoginModel)

	assert.Nil(t, cmd)
	assert.Equal(t, "Unknown email address", login.errMsg)
	assert.Nil(t, s.Snapshot().CurrentUser)

	view := login.View()
	assert.Contains(t, view, "Unknown email address")
}

func TestLoginModel_EnterOnEmailMovesToPassword(t *testing.T) {
	s := store.New()
	s.Seed(store.DemoData())

	login := NewLoginModel(s)
	assert.Equal(t, 0, login.focus)

	model, _ := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	login = model.(LoginModel)
	assert.Equal(t, 1, login.focus)
	assert.Nil(t, s.Snapshot().CurrentUser)
}

func TestLoginModel_ShowsDemoAccounts(t *testing.T) {
	s := store.New()
	login := NewLoginModel(s)

	view := login.View()
	assert.Contains(t, view, "alice@company.com")
	assert.Contains(t, view, "bob@company.com")
}
