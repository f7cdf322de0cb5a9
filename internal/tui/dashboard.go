package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

const recentTaskLimit = 5

var dashboardPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// DashboardModel shows an overview: headline stats, the active projects,
// and the current user's tasks closest to their due date.
type DashboardModel struct {
	store *store.Store
	snap  store.Snapshot

	// Derived, rebuilt on refresh.
	activeProjects []domain.Project
	myTasks        []domain.Task

	selected int // index into activeProjects

	width  int
	height int
}

// NewDashboardModel creates the dashboard from a snapshot.
func NewDashboardModel(s *store.Store, snap store.Snapshot) DashboardModel {
	m := DashboardModel{store: s}
	m.refresh(snap)
	return m
}

// Init is a no-op; the dashboard has nothing to start.
func (m DashboardModel) Init() tea.Cmd { return nil }

func (m DashboardModel) inputActive() bool { return false }

// refresh re-derives the dashboard's slices from a new snapshot.
func (m *DashboardModel) refresh(snap store.Snapshot) {
	m.snap = snap
	m.activeProjects = snap.ActiveProjects()

	m.myTasks = nil
	if snap.CurrentUser != nil {
		m.myTasks = snap.TasksAssignedTo(snap.CurrentUser.ID)
		// YYYY-MM-DD sorts correctly as a string.
		sort.SliceStable(m.myTasks, func(i, j int) bool {
			return m.myTasks[i].DueDate < m.myTasks[j].DueDate
		})
		if len(m.myTasks) > recentTaskLimit {
			m.myTasks = m.myTasks[:recentTaskLimit]
		}
	}

	if m.selected >= len(m.activeProjects) {
		m.selected = 0
	}
}

// Update handles project selection.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.activeProjects)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "enter":
			if m.selected < len(m.activeProjects) {
				m.store.SelectProject(m.activeProjects[m.selected].ID)
				return m, refresh
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var b strings.Builder

	if m.snap.CurrentUser != nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Hello, %s", m.snap.CurrentUser.Name)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.statsLine()))
	b.WriteString("\n\n")

	panelWidth := width/2 - 3
	if panelWidth < 30 {
		panelWidth = 30
	}

	left := dashboardPanelStyle.Width(panelWidth).Render(m.renderActiveProjects(panelWidth - 2))
	right := dashboardPanelStyle.Width(panelWidth).Render(m.renderMyTasks(panelWidth - 2))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k:select enter:open project"))

	return b.String()
}

// statsLine derives the headline numbers from the snapshot.
func (m DashboardModel) statsLine() string {
	done := 0
	for _, t := range m.snap.Tasks {
		if t.Status == domain.TaskDone {
			done++
		}
	}
	progress := 0
	if len(m.snap.Tasks) > 0 {
		progress = done * 100 / len(m.snap.Tasks)
	}

	myTotal := 0
	if m.snap.CurrentUser != nil {
		myTotal = len(m.snap.TasksAssignedTo(m.snap.CurrentUser.ID))
	}

	return fmt.Sprintf("%d active projects | %d of my tasks | %d team members | %d%% done",
		len(m.activeProjects), myTotal, len(m.snap.Users), progress)
}

func (m DashboardModel) renderActiveProjects(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Active projects"))
	b.WriteString("\n")

	if len(m.activeProjects) == 0 {
		b.WriteString(dimStyle.Render("(none)"))
		return b.String()
	}

	for i, p := range m.activeProjects {
		line := fmt.Sprintf("%s  %s", truncate(p.Name, width-14), dimStyle.Render("→ "+p.EndDate))
		if i == m.selected {
			b.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(NormalItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) renderMyTasks(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My tasks"))
	b.WriteString("\n")

	if len(m.myTasks) == 0 {
		b.WriteString(dimStyle.Render("Nothing assigned to you"))
		return b.String()
	}

	for _, t := range m.myTasks {
		b.WriteString(NormalItemStyle.Render(truncate(t.Title, width-2)))
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(badge(string(t.Status), statusColors))
		b.WriteString(" ")
		b.WriteString(badge(string(t.Priority), priorityColors))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("due " + t.DueDate))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 2 {
		max = 2
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
