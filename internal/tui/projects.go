package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// projectItem wraps a domain.Project for use in bubbles/list.
type projectItem struct {
	project domain.Project
	done    int
	total   int
}

func (i projectItem) FilterValue() string {
	return i.project.Name
}

func (i projectItem) Title() string {
	return i.project.Name
}

func (i projectItem) Description() string {
	return fmt.Sprintf("%s  %s → %s  %d/%d tasks  %d members",
		i.project.Status, i.project.StartDate, i.project.EndDate,
		i.done, i.total, len(i.project.TeamMembers))
}

// projectDelegate is a custom item delegate for project items.
type projectDelegate struct{}

func (d projectDelegate) Height() int                             { return 2 }
func (d projectDelegate) Spacing() int                            { return 1 }
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(projectItem)
	if !ok {
		return
	}

	desc := badge(string(i.project.Status), statusColors) + dimStyle.Render(
		fmt.Sprintf("  %s → %s  %d/%d tasks  %d members",
			i.project.StartDate, i.project.EndDate, i.done, i.total, len(i.project.TeamMembers)))

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+i.Title()))
		fmt.Fprint(w, "\n  "+desc)
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+i.Title()))
		fmt.Fprint(w, "\n  "+desc)
	}
}

// projectFormFieldCount is the number of text inputs in the project form.
const projectFormFieldCount = 4 // name, description, start, end

// ProjectListModel displays all projects and hosts the inline create/edit
// form and the delete confirmation.
type ProjectListModel struct {
	store *store.Store
	snap  store.Snapshot

	list list.Model

	// Form state (component-local; committed via store actions only).
	editing bool
	editID  string // empty when creating
	inputs  [projectFormFieldCount]textinput.Model
	status  domain.ProjectStatus
	members []string // selected user ids, in toggle order
	focus   int      // 0..3 inputs, 4 status, 5..5+len(users)-1 team, last submit

	confirmingDelete bool
	deleteTarget     domain.Project

	width  int
	height int
}

// NewProjectListModel creates the project list from a snapshot.
func NewProjectListModel(s *store.Store, snap store.Snapshot) ProjectListModel {
	l := list.New(nil, projectDelegate{}, 80, 20)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	m := ProjectListModel{store: s, list: l}
	m.refresh(snap)
	return m
}

// Init is a no-op.
func (m ProjectListModel) Init() tea.Cmd { return nil }

func (m ProjectListModel) inputActive() bool {
	return m.editing || m.confirmingDelete || m.list.SettingFilter()
}

// refresh rebuilds the list items from a new snapshot.
func (m *ProjectListModel) refresh(snap store.Snapshot) {
	m.snap = snap

	items := make([]list.Item, len(snap.Projects))
	for i, p := range snap.Projects {
		done, total := 0, 0
		for _, t := range snap.Tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == domain.TaskDone {
				done++
			}
		}
		items[i] = projectItem{project: p, done: done, total: total}
	}
	m.list.SetItems(items)
}

// Update handles list navigation, the form, and the delete confirmation.
func (m ProjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		if m.confirmingDelete {
			return m.handleConfirmDelete(msg)
		}
		if m.editing {
			return m.handleFormKey(msg)
		}
		if !m.list.SettingFilter() {
			switch msg.String() {
			case "enter":
				if item, ok := m.list.SelectedItem().(projectItem); ok {
					m.store.SelectProject(item.project.ID)
					return m, refresh
				}
			case "n":
				if domain.CanCreateProject(m.snap.CurrentUser) {
					m.openForm(nil)
					return m, textinput.Blink
				}
			case "e":
				if item, ok := m.list.SelectedItem().(projectItem); ok && domain.CanCreateProject(m.snap.CurrentUser) {
					p := item.project
					m.openForm(&p)
					return m, textinput.Blink
				}
			case "d":
				if item, ok := m.list.SelectedItem().(projectItem); ok && domain.CanDeleteProject(m.snap.CurrentUser) {
					m.confirmingDelete = true
					m.deleteTarget = item.project
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ProjectListModel) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmingDelete = false
		m.store.DeleteProject(m.deleteTarget.ID)
		return m, refresh
	case "n", "N", "esc":
		m.confirmingDelete = false
	}
	return m, nil
}

// openForm prepares the form, prefilled from p when editing.
func (m *ProjectListModel) openForm(p *domain.Project) {
	placeholders := [projectFormFieldCount]string{"Project name", "Description", "Start date (YYYY-MM-DD)", "End date (YYYY-MM-DD)"}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = placeholders[i]
		m.inputs[i].CharLimit = 200
	}

	m.editing = true
	m.editID = ""
	m.status = domain.ProjectActive
	m.members = nil
	m.focus = 0
	m.inputs[0].Focus()

	if p != nil {
		m.editID = p.ID
		m.inputs[0].SetValue(p.Name)
		m.inputs[1].SetValue(p.Description)
		m.inputs[2].SetValue(p.StartDate)
		m.inputs[3].SetValue(p.EndDate)
		m.status = p.Status
		m.members = append([]string(nil), p.TeamMembers...)
	}
}

// Form focus layout: text inputs, then the status row, then one row per
// user for team membership, then the submit row.
func (m ProjectListModel) formRowCount() int {
	return projectFormFieldCount + 1 + len(m.snap.Users) + 1
}

func (m ProjectListModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	statusRow := projectFormFieldCount
	firstUserRow := statusRow + 1
	submitRow := m.formRowCount() - 1

	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil

	case "tab", "down":
		m.setFormFocus(m.focus + 1)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.setFormFocus(m.focus - 1)
		return m, textinput.Blink

	case "left", "right":
		if m.focus == statusRow {
			m.status = cycleProjectStatus(m.status, msg.String() == "right")
			return m, nil
		}

	case " ":
		if m.focus >= firstUserRow && m.focus < submitRow {
			m.toggleMember(m.snap.Users[m.focus-firstUserRow].ID)
			return m, nil
		}

	case "enter":
		if m.focus == submitRow {
			m.submitForm()
			m.editing = false
			return m, refresh
		}
		if m.focus == statusRow {
			m.status = cycleProjectStatus(m.status, true)
			return m, nil
		}
		if m.focus >= firstUserRow {
			m.toggleMember(m.snap.Users[m.focus-firstUserRow].ID)
			return m, nil
		}
		m.setFormFocus(m.focus + 1)
		return m, textinput.Blink
	}

	if m.focus < projectFormFieldCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProjectListModel) setFormFocus(idx int) {
	rows := m.formRowCount()
	if idx < 0 {
		idx = rows - 1
	}
	if idx >= rows {
		idx = 0
	}
	m.focus = idx

	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *ProjectListModel) toggleMember(userID string) {
	for i, id := range m.members {
		if id == userID {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return
		}
	}
	m.members = append(m.members, userID)
}

func (m *ProjectListModel) submitForm() {
	name := strings.TrimSpace(m.inputs[0].Value())
	desc := strings.TrimSpace(m.inputs[1].Value())
	start := strings.TrimSpace(m.inputs[2].Value())
	end := strings.TrimSpace(m.inputs[3].Value())
	status := m.status
	members := append([]string(nil), m.members...)

	if m.editID == "" {
		m.store.AddProject(domain.Project{
			Name:        name,
			Description: desc,
			StartDate:   start,
			EndDate:     end,
			Status:      status,
			TeamMembers: members,
		})
		return
	}

	m.store.UpdateProject(m.editID, store.ProjectPatch{
		Name:        &name,
		Description: &desc,
		StartDate:   &start,
		EndDate:     &end,
		Status:      &status,
		TeamMembers: &members,
	})
}

// View renders the list, the form, or the delete confirmation.
func (m ProjectListModel) View() string {
	if m.confirmingDelete {
		prompt := fmt.Sprintf("Delete project %q and all of its tasks and comments? [y/n]", m.deleteTarget.Name)
		return "\n" + ErrorStyle.Render(prompt)
	}

	if m.editing {
		return m.renderForm()
	}

	view := m.list.View()
	hints := "enter:open n:new e:edit d:delete /:filter"
	if !domain.CanCreateProject(m.snap.CurrentUser) {
		hints = "enter:open /:filter"
	}
	return view + "\n" + dimStyle.Render(hints)
}

func (m ProjectListModel) renderForm() string {
	statusRow := projectFormFieldCount
	firstUserRow := statusRow + 1
	submitRow := m.formRowCount() - 1

	var b strings.Builder
	if m.editID == "" {
		b.WriteString(TitleStyle.Render("New project"))
	} else {
		b.WriteString(TitleStyle.Render("Edit project"))
	}
	b.WriteString("\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(formRow(m.focus == statusRow, "Status: ", badge(string(m.status), statusColors)+dimStyle.Render(" (←/→ to change)")))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Team members (space to toggle):"))
	b.WriteString("\n")
	for i, u := range m.snap.Users {
		mark := "[ ]"
		if m.isMember(u.ID) {
			mark = "[x]"
		}
		b.WriteString(formRow(m.focus == firstUserRow+i, "  ", fmt.Sprintf("%s %s (%s)", mark, u.Name, u.Role)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formRow(m.focus == submitRow, "", "[ Save ]"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab:next field enter:save esc:cancel"))

	return b.String()
}

func (m ProjectListModel) isMember(userID string) bool {
	for _, id := range m.members {
		if id == userID {
			return true
		}
	}
	return false
}

// formRow renders one non-input form row with a selection marker.
func formRow(focused bool, label, value string) string {
	prefix := "  "
	if focused {
		prefix = SelectedItemStyle.Render("> ")
	}
	return prefix + labelStyle.Render(label) + value
}

// cycleProjectStatus steps through the project statuses in order.
func cycleProjectStatus(s domain.ProjectStatus, forward bool) domain.ProjectStatus {
	order := []domain.ProjectStatus{domain.ProjectActive, domain.ProjectCompleted, domain.ProjectSuspended}
	for i, v := range order {
		if v == s {
			if forward {
				return order[(i+1)%len(order)]
			}
			return order[(i+len(order)-1)%len(order)]
		}
	}
	return order[0]
}
