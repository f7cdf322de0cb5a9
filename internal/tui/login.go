package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/celine/taskdeck/internal/store"
)

var loginBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 3)

// LoginModel is the login screen: an email and a password input.
// The password is part of the form for fidelity but is never checked.
type LoginModel struct {
	store *store.Store

	email    textinput.Model
	password textinput.Model
	focus    int // 0=email, 1=password
	errMsg   string

	width  int
	height int
}

// NewLoginModel creates a login screen bound to the store.
func NewLoginModel(s *store.Store) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.Prompt = "Email    > "
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password > "
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		store:    s,
		email:    email,
		password: password,
	}
}

// Init starts the cursor blink.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) inputActive() bool { return true }

// Update handles form navigation and submission.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, textinput.Blink
		case "enter":
			if m.focus == 0 {
				m.setFocus(1)
				return m, textinput.Blink
			}
			if m.store.Login(strings.TrimSpace(m.email.Value()), m.password.Value()) {
				return m, refresh
			}
			m.errMsg = "Unknown email address"
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) setFocus(idx int) {
	m.focus = idx
	if idx == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

// View renders the centered login box.
func (m LoginModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("taskdeck"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Demo accounts:"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Admin:  alice@company.com"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Member: bob@company.com"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Any password works."))

	box := loginBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
