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

// userItem wraps a domain.User for use in bubbles/list.
type userItem struct {
	user      domain.User
	openTasks int
	isSelf    bool
}

func (i userItem) FilterValue() string {
	return i.user.Name + " " + i.user.Email
}

// userDelegate is a custom item delegate for user items.
type userDelegate struct{}

func (d userDelegate) Height() int                             { return 2 }
func (d userDelegate) Spacing() int                            { return 1 }
func (d userDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d userDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(userItem)
	if !ok {
		return
	}

	name := i.user.Name
	if i.isSelf {
		name += " (you)"
	}

	desc := dimStyle.Render(fmt.Sprintf("%s  %s  %d open tasks", i.user.Email, i.user.Role, i.openTasks))

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+name))
		fmt.Fprint(w, "\n  "+desc)
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+name))
		fmt.Fprint(w, "\n  "+desc)
	}
}

// userFormFieldCount is the number of text inputs in the user form.
const userFormFieldCount = 2 // name, email

// UserListModel is the admin-only team management view.
type UserListModel struct {
	store *store.Store
	snap  store.Snapshot

	list list.Model

	// Form state
	editing bool
	editID  string
	inputs  [userFormFieldCount]textinput.Model
	role    domain.Role
	focus   int // 0..1 inputs, 2 role, 3 submit

	confirmingDelete bool
	deleteTarget     domain.User

	width  int
	height int
}

// NewUserListModel creates the user list from a snapshot.
func NewUserListModel(s *store.Store, snap store.Snapshot) UserListModel {
	l := list.New(nil, userDelegate{}, 80, 20)
	l.Title = "Team"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	m := UserListModel{store: s, list: l}
	m.refresh(snap)
	return m
}

// Init is a no-op.
func (m UserListModel) Init() tea.Cmd { return nil }

func (m UserListModel) inputActive() bool {
	return m.editing || m.confirmingDelete || m.list.SettingFilter()
}

// refresh rebuilds the list items from a new snapshot.
func (m *UserListModel) refresh(snap store.Snapshot) {
	m.snap = snap

	items := make([]list.Item, len(snap.Users))
	for i, u := range snap.Users {
		open := 0
		for _, t := range snap.TasksAssignedTo(u.ID) {
			if t.Status != domain.TaskDone {
				open++
			}
		}
		isSelf := snap.CurrentUser != nil && snap.CurrentUser.ID == u.ID
		items[i] = userItem{user: u, openTasks: open, isSelf: isSelf}
	}
	m.list.SetItems(items)
}

// Update handles list navigation, the form, and the delete confirmation.
func (m UserListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		if m.confirmingDelete {
			switch msg.String() {
			case "y", "Y":
				m.confirmingDelete = false
				m.store.DeleteUser(m.deleteTarget.ID)
				return m, refresh
			case "n", "N", "esc":
				m.confirmingDelete = false
			}
			return m, nil
		}
		if m.editing {
			return m.handleFormKey(msg)
		}
		if !m.list.SettingFilter() && domain.CanManageUsers(m.snap.CurrentUser) {
			switch msg.String() {
			case "n":
				m.openForm(nil)
				return m, textinput.Blink
			case "e":
				if item, ok := m.list.SelectedItem().(userItem); ok {
					u := item.user
					m.openForm(&u)
					return m, textinput.Blink
				}
			case "d":
				if item, ok := m.list.SelectedItem().(userItem); ok {
					m.confirmingDelete = true
					m.deleteTarget = item.user
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openForm prepares the form, prefilled from u when editing.
func (m *UserListModel) openForm(u *domain.User) {
	placeholders := [userFormFieldCount]string{"Full name", "Email address"}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = placeholders[i]
		m.inputs[i].CharLimit = 200
	}

	m.editing = true
	m.editID = ""
	m.role = domain.RoleMember
	m.focus = 0
	m.inputs[0].Focus()

	if u != nil {
		m.editID = u.ID
		m.inputs[0].SetValue(u.Name)
		m.inputs[1].SetValue(u.Email)
		m.role = u.Role
	}
}

func (m UserListModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	roleRow := userFormFieldCount
	submitRow := roleRow + 1

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
		if m.focus == roleRow {
			m.role = toggleRole(m.role)
			return m, nil
		}

	case "enter":
		if m.focus == submitRow {
			m.submitForm()
			m.editing = false
			return m, refresh
		}
		if m.focus == roleRow {
			m.role = toggleRole(m.role)
			return m, nil
		}
		m.setFormFocus(m.focus + 1)
		return m, textinput.Blink
	}

	if m.focus < userFormFieldCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *UserListModel) setFormFocus(idx int) {
	rows := userFormFieldCount + 2
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

func (m *UserListModel) submitForm() {
	name := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	role := m.role

	if m.editID == "" {
		m.store.AddUser(domain.User{
			Name:  name,
			Email: email,
			Role:  role,
		})
		return
	}

	m.store.UpdateUser(m.editID, store.UserPatch{
		Name:  &name,
		Email: &email,
		Role:  &role,
	})
}

// View renders the list, the form, or the delete confirmation.
func (m UserListModel) View() string {
	if m.confirmingDelete {
		prompt := fmt.Sprintf("Remove %s from the team? Their tasks stay assigned. [y/n]", m.deleteTarget.Name)
		return "\n" + ErrorStyle.Render(prompt)
	}

	if m.editing {
		return m.renderForm()
	}

	return m.list.View() + "\n" + dimStyle.Render("n:new e:edit d:remove /:filter")
}

func (m UserListModel) renderForm() string {
	roleRow := userFormFieldCount
	submitRow := roleRow + 1

	var b strings.Builder
	if m.editID == "" {
		b.WriteString(TitleStyle.Render("New user"))
	} else {
		b.WriteString(TitleStyle.Render("Edit user"))
	}
	b.WriteString("\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(formRow(m.focus == roleRow, "Role: ", valueStyle.Render(string(m.role))+dimStyle.Render(" (←/→ to change)")))
	b.WriteString("\n\n")
	b.WriteString(formRow(m.focus == submitRow, "", "[ Save ]"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab:next field enter:save esc:cancel"))

	return b.String()
}

// toggleRole flips between the two roles.
func toggleRole(r domain.Role) domain.Role {
	if r == domain.RoleAdmin {
		return domain.RoleMember
	}
	return domain.RoleAdmin
}
