package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

func newDashboard(t *testing.T) (*store.Store, DashboardModel) {
	t.Helper()

	s := store.New()
	s.Seed(store.DemoData())
	require.True(t, s.Login("alice@company.com", "pw"))
	return s, NewDashboardModel(s, s.Snapshot())
}

func TestDashboardModel_Derivations(t *testing.T) {
	_, dash := newDashboard(t)

	// Projects 1 and 2 are active, project 3 is completed
	require.Len(t, dash.activeProjects, 2)
	assert.Equal(t, "1", dash.activeProjects[0].ID)
	assert.Equal(t, "2", dash.activeProjects[1].ID)

	// Alice owns tasks 3 and 5, ordered by due date
	require.Len(t, dash.myTasks, 2)
	assert.Equal(t, "3", dash.myTasks[0].ID)
	assert.Equal(t, "5", dash.myTasks[1].ID)
}

func TestDashboardModel_StatsLine(t *testing.T) {
	_, dash := newDashboard(t)

	// 2 of 5 seeded tasks are done
	stats := dash.statsLine()
	assert.Contains(t, stats, "2 active projects")
	assert.Contains(t, stats, "2 of my tasks")
	assert.Contains(t, stats, "4 team members")
	assert.Contains(t, stats, "40% done")
}

func TestDashboardModel_OpenProject(t *testing.T) {
	s, dash := newDashboard(t)

	model, _ := dash.Update(keyRunes('j'))
	dash = model.(DashboardModel)
	assert.Equal(t, 1, dash.selected)

	_, cmd := dash.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Equal(t, "2", snap.SelectedProjectID)
	assert.Equal(t, domain.ViewProjectDetail, snap.CurrentView)
}

func TestDashboardModel_SelectionClampedOnRefresh(t *testing.T) {
	s, dash := newDashboard(t)

	model, _ := dash.Update(keyRunes('j'))
	dash = model.(DashboardModel)
	require.Equal(t, 1, dash.selected)

	// Suspend project 2; only one active project remains
	status := domain.ProjectSuspended
	s.UpdateProject("2", store.ProjectPatch{Status: &status})
	dash.refresh(s.Snapshot())

	assert.Len(t, dash.activeProjects, 1)
	assert.Equal(t, 0, dash.selected)
}

func TestDashboardModel_View(t *testing.T) {
	_, dash := newDashboard(t)
	dash.width = 120

	view := dash.View()
	assert.Contains(t, view, "Hello, Alice Martin")
	assert.Contains(t, view, "Active projects")
	assert.Contains(t, view, "My tasks")
}
