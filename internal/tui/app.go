package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// headerHeight is the number of lines the navigation header occupies.
const headerHeight = 2

// screen is implemented by every child model so the root model can tell
// whether a text input currently owns the keyboard.
type screen interface {
	tea.Model
	inputActive() bool
}

// AppModel is the root Bubble Tea model. It owns no domain state itself:
// the store's session fields decide which child model is active, and every
// stateChangedMsg re-syncs the active child from a fresh snapshot.
type AppModel struct {
	store   *store.Store
	current tea.Model

	width  int
	height int
}

// NewAppModel creates the root model for the given store.
func NewAppModel(s *store.Store) AppModel {
	m := AppModel{store: s}
	m.sync()
	return m
}

// Init initializes the active child model.
func (m AppModel) Init() tea.Cmd {
	if m.current != nil {
		return m.current.Init()
	}
	return nil
}

// Update handles global keys and screen transitions, delegating everything
// else to the active child model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.sizeCurrent()

	case stateChangedMsg:
		m.sync()
		return m, m.sizeCurrent()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the header plus the active child model. The login screen is
// rendered without a header.
func (m AppModel) View() string {
	if m.current == nil {
		return ""
	}
	snap := m.store.Snapshot()
	if snap.CurrentUser == nil {
		return m.current.View()
	}
	return renderHeader(snap, m.width) + "\n" + m.current.View()
}

// handleGlobalKey processes navigation keys that work on every screen as
// long as no text input is focused.
func (m *AppModel) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if s, ok := m.current.(screen); ok && s.inputActive() {
		return nil, false
	}

	snap := m.store.Snapshot()
	if snap.CurrentUser == nil {
		return nil, false
	}

	switch msg.String() {
	case "D":
		m.store.SetCurrentView(domain.ViewDashboard)
	case "P":
		m.store.SetCurrentView(domain.ViewProjects)
	case "U":
		if !domain.CanManageUsers(snap.CurrentUser) {
			return nil, false
		}
		m.store.SetCurrentView(domain.ViewUsers)
	case "ctrl+l":
		m.store.Logout()
	default:
		return nil, false
	}

	m.sync()
	return m.sizeCurrent(), true
}

// sync aligns the active child model with the store's session state,
// applying the dangling-selection fallbacks before a detail view is built:
// a deleted selected task falls back to the project detail, a deleted
// selected project falls back to the project list.
func (m *AppModel) sync() {
	snap := m.store.Snapshot()

	if snap.CurrentUser == nil {
		if _, ok := m.current.(LoginModel); !ok {
			m.current = NewLoginModel(m.store)
		}
		return
	}

	if snap.CurrentView == domain.ViewTaskDetail && snap.SelectedTask() == nil {
		m.store.SelectTask("")
		snap = m.store.Snapshot()
	}
	if snap.CurrentView == domain.ViewProjectDetail && snap.SelectedProject() == nil {
		m.store.SelectProject("")
		snap = m.store.Snapshot()
	}
	if snap.CurrentView == domain.ViewUsers && !domain.CanManageUsers(snap.CurrentUser) {
		m.store.SetCurrentView(domain.ViewDashboard)
		snap = m.store.Snapshot()
	}

	switch snap.CurrentView {
	case domain.ViewDashboard:
		if d, ok := m.current.(DashboardModel); ok {
			d.refresh(snap)
			m.current = d
		} else {
			m.current = NewDashboardModel(m.store, snap)
		}
	case domain.ViewProjects:
		if p, ok := m.current.(ProjectListModel); ok {
			p.refresh(snap)
			m.current = p
		} else {
			m.current = NewProjectListModel(m.store, snap)
		}
	case domain.ViewProjectDetail:
		if b, ok := m.current.(BoardModel); ok && b.projectID == snap.SelectedProjectID {
			b.refresh(snap)
			m.current = b
		} else {
			m.current = NewBoardModel(m.store, snap)
		}
	case domain.ViewTaskDetail:
		if t, ok := m.current.(TaskDetailModel); ok && t.taskID == snap.SelectedTaskID {
			t.refresh(snap)
			m.current = t
		} else {
			m.current = NewTaskDetailModel(m.store, snap)
		}
	case domain.ViewUsers:
		if u, ok := m.current.(UserListModel); ok {
			u.refresh(snap)
			m.current = u
		} else {
			m.current = NewUserListModel(m.store, snap)
		}
	}
}

// sizeCurrent forwards the cached terminal size to the active child model.
func (m *AppModel) sizeCurrent() tea.Cmd {
	if m.current == nil || m.width == 0 {
		return nil
	}

	height := m.height
	if _, ok := m.current.(LoginModel); !ok {
		height -= headerHeight
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(tea.WindowSizeMsg{Width: m.width, Height: height})
	return cmd
}
