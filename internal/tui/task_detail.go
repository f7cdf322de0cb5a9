package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// Layout constants
const (
	leftPanelRatio   = 0.35 // Left panel takes 35% of width
	minLeftWidth     = 30
	maxLeftWidth     = 50
	detailHintHeight = 1
	footerHeight     = 1
	borderSize       = 2 // Top + bottom border
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	commentAuthorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	commentTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	commentBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205"))

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)
)

// TaskDetailModel is the split-screen view for one task: metadata on the
// left, the discussion thread and comment composer on the right.
type TaskDetailModel struct {
	store  *store.Store
	snap   store.Snapshot
	taskID string

	commentInput textarea.Model
	viewport     viewport.Model

	// State
	commentMode     bool
	editCommentID   string // non-empty while editing an existing comment
	confirmExit     bool   // unsaved comment prompt
	selectedComment int    // index into the task's comments, -1 = none

	confirmDeleteTask    bool
	confirmDeleteComment bool
	deleteCommentID      string

	width  int
	height int
}

// NewTaskDetailModel creates the detail view for the selected task.
func NewTaskDetailModel(s *store.Store, snap store.Snapshot) TaskDetailModel {
	ta := textarea.New()
	ta.Placeholder = "Write your comment here..."
	ta.CharLimit = 65535
	ta.SetHeight(6)
	ta.SetWidth(40) // Will be resized
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("228"))
	ta.BlurredStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	vp := viewport.New(40, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := TaskDetailModel{
		store:           s,
		taskID:          snap.SelectedTaskID,
		commentInput:    ta,
		viewport:        vp,
		selectedComment: -1,
	}
	m.refresh(snap)
	return m
}

// Init is a no-op.
func (m TaskDetailModel) Init() tea.Cmd { return nil }

func (m TaskDetailModel) inputActive() bool {
	return m.commentMode || m.confirmExit || m.confirmDeleteTask || m.confirmDeleteComment
}

// refresh re-renders the discussion from a new snapshot.
func (m *TaskDetailModel) refresh(snap store.Snapshot) {
	m.snap = snap
	m.taskID = snap.SelectedTaskID

	comments := snap.CommentsForTask(m.taskID)
	if m.selectedComment >= len(comments) {
		m.selectedComment = len(comments) - 1
	}
	m.updateViewportContent()
}

func (m TaskDetailModel) task() *domain.Task {
	return m.snap.TaskByID(m.taskID)
}

func (m TaskDetailModel) comments() []domain.Comment {
	return m.snap.CommentsForTask(m.taskID)
}

// Update handles messages.
func (m TaskDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if !m.commentMode {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.commentMode {
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// resizeComponents calculates and sets component dimensions.
func (m *TaskDetailModel) resizeComponents() {
	leftWidth := int(float64(m.width) * leftPanelRatio)
	if leftWidth < minLeftWidth {
		leftWidth = minLeftWidth
	}
	if leftWidth > maxLeftWidth {
		leftWidth = maxLeftWidth
	}

	rightWidth := m.width - leftWidth - 3
	if rightWidth < 30 {
		rightWidth = 30
	}

	contentHeight := m.height - detailHintHeight - footerHeight - borderSize
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.viewport.Width = rightWidth - borderSize - 2
	m.viewport.Height = contentHeight - borderSize - 2

	m.commentInput.SetWidth(rightWidth - borderSize - 4)

	m.updateViewportContent()
}

// handleKeyPress processes keyboard input.
func (m TaskDetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDeleteTask {
		switch msg.String() {
		case "y", "Y":
			m.confirmDeleteTask = false
			m.store.DeleteTask(m.taskID)
			m.store.SelectTask("")
			return m, refresh
		case "n", "N", "esc":
			m.confirmDeleteTask = false
		}
		return m, nil
	}

	if m.confirmDeleteComment {
		switch msg.String() {
		case "y", "Y":
			m.confirmDeleteComment = false
			m.store.DeleteComment(m.deleteCommentID)
			return m, refresh
		case "n", "N", "esc":
			m.confirmDeleteComment = false
		}
		return m, nil
	}

	// Confirm exit dialog
	if m.confirmExit {
		switch msg.String() {
		case "y", "Y":
			m.confirmExit = false
			m.commentMode = false
			m.editCommentID = ""
			m.commentInput.Reset()
			m.commentInput.Blur()
			return m, nil
		case "n", "N", "esc":
			m.confirmExit = false
			return m, nil
		case "s", "S":
			m.confirmExit = false
			return m, m.submitComment()
		}
		return m, nil
	}

	// Comment mode: the textarea gets all keys except the special ones.
	if m.commentMode {
		switch msg.String() {
		case "esc":
			if strings.TrimSpace(m.commentInput.Value()) != "" {
				m.confirmExit = true
				return m, nil
			}
			m.commentMode = false
			m.editCommentID = ""
			m.commentInput.Blur()
			return m, nil
		case "ctrl+s":
			return m, m.submitComment()
		default:
			var cmd tea.Cmd
			m.commentInput, cmd = m.commentInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "esc":
		m.store.SelectTask("")
		return m, refresh
	case "c":
		if domain.CanComment(m.snap.CurrentUser) {
			m.commentMode = true
			m.editCommentID = ""
			m.commentInput.Reset()
			m.commentInput.Focus()
			return m, textarea.Blink
		}
	case "e":
		if c := m.currentComment(); c != nil && domain.CanEditComment(m.snap.CurrentUser, c) {
			m.commentMode = true
			m.editCommentID = c.ID
			m.commentInput.SetValue(c.Content)
			m.commentInput.Focus()
			return m, textarea.Blink
		}
	case "x":
		if c := m.currentComment(); c != nil && domain.CanEditComment(m.snap.CurrentUser, c) {
			m.confirmDeleteComment = true
			m.deleteCommentID = c.ID
		}
	case "d":
		if domain.CanDeleteTask(m.snap.CurrentUser) {
			m.confirmDeleteTask = true
		}
	case "1", "2", "3":
		idx := int(msg.Runes[0] - '1')
		if idx < len(domain.TaskStatuses) {
			status := domain.TaskStatuses[idx]
			m.store.UpdateTask(m.taskID, store.TaskPatch{Status: &status})
			return m, refresh
		}
	case "J":
		(&m).moveCommentSelection(1)
	case "K":
		(&m).moveCommentSelection(-1)
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}

	return m, nil
}

// moveCommentSelection moves the comment cursor by delta and re-renders.
func (m *TaskDetailModel) moveCommentSelection(delta int) {
	comments := m.comments()
	if len(comments) == 0 {
		return
	}

	idx := m.selectedComment + delta
	if idx < -1 {
		idx = -1
	}
	if idx >= len(comments) {
		idx = len(comments) - 1
	}
	m.selectedComment = idx
	m.updateViewportContent()
}

// currentComment returns the comment under the cursor, or nil.
func (m TaskDetailModel) currentComment() *domain.Comment {
	comments := m.comments()
	if m.selectedComment < 0 || m.selectedComment >= len(comments) {
		return nil
	}
	c := comments[m.selectedComment]
	return &c
}

// submitComment commits the composer content as a new or edited comment.
func (m *TaskDetailModel) submitComment() tea.Cmd {
	content := strings.TrimSpace(m.commentInput.Value())
	if content == "" {
		return nil
	}

	if m.editCommentID != "" {
		m.store.UpdateComment(m.editCommentID, store.CommentPatch{Content: &content})
	} else if m.snap.CurrentUser != nil {
		m.store.AddComment(domain.Comment{
			TaskID:  m.taskID,
			UserID:  m.snap.CurrentUser.ID,
			Content: content,
		})
	}

	m.commentMode = false
	m.editCommentID = ""
	m.commentInput.Reset()
	m.commentInput.Blur()
	return refresh
}

// View renders the split-screen detail view.
func (m TaskDetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	task := m.task()
	if task == nil {
		return dimStyle.Render("Task not found")
	}

	leftWidth := int(float64(width) * leftPanelRatio)
	if leftWidth < minLeftWidth {
		leftWidth = minLeftWidth
	}
	if leftWidth > maxLeftWidth {
		leftWidth = maxLeftWidth
	}
	rightWidth := width - leftWidth - 1

	contentHeight := height - detailHintHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	hints := m.renderHints()

	leftContent := m.renderLeftPanel(task, leftWidth-borderSize, contentHeight-borderSize)
	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(leftContent)

	rightContent := m.renderRightPanel(task, rightWidth-borderSize, contentHeight-borderSize)
	rightBorder := focusedPanelBorderStyle
	if m.commentMode {
		rightBorder = panelBorderStyle
	}
	rightPanel := rightBorder.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(rightContent)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)

	footer := m.renderFooter(width)

	return lipgloss.JoinVertical(lipgloss.Left, hints, panels, footer)
}

// renderHints renders the top help bar.
func (m TaskDetailModel) renderHints() string {
	if m.confirmDeleteTask {
		return warningStyle.Render("Delete this task and its comments? [y/n]")
	}
	if m.confirmDeleteComment {
		return warningStyle.Render("Delete this comment? [y/n]")
	}
	if m.confirmExit {
		return warningStyle.Render("Unsaved comment! [Y]discard [N]cancel [S]save and exit")
	}
	if m.commentMode {
		label := "Writing comment..."
		if m.editCommentID != "" {
			label = "Editing comment..."
		}
		return dimStyle.Render("[Ctrl+S]save [ESC]cancel") + "  " + commentAuthorStyle.Render(label)
	}

	parts := []string{"[q]back", "[j/k]scroll", "[J/K]comment", "[1-3]status"}
	if domain.CanComment(m.snap.CurrentUser) {
		parts = append(parts, "[c]comment", "[e]edit", "[x]delete")
	}
	if domain.CanDeleteTask(m.snap.CurrentUser) {
		parts = append(parts, "[d]delete task")
	}
	return dimStyle.Render(strings.Join(parts, " "))
}

// renderFooter renders the bottom status bar.
func (m TaskDetailModel) renderFooter(width int) string {
	var left, right string

	if m.commentMode {
		left = fmt.Sprintf("%d chars", len(m.commentInput.Value()))
	} else if c := m.currentComment(); c != nil {
		left = fmt.Sprintf("comment %d/%d", m.selectedComment+1, len(m.comments()))
	}

	if len(m.comments()) > 0 && !m.commentMode {
		if m.viewport.AtTop() {
			right = "TOP"
		} else if m.viewport.AtBottom() {
			right = "END"
		} else {
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the task metadata panel.
func (m TaskDetailModel) renderLeftPanel(task *domain.Task, width, height int) string {
	var b strings.Builder

	if p := m.snap.ProjectByID(task.ProjectID); p != nil {
		b.WriteString(detailLabelStyle.Render(p.Name))
		b.WriteString("\n\n")
	}

	title := wordwrap.String(task.Title, width-2)
	b.WriteString(detailTitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(detailLabelStyle.Render("Status: "))
	b.WriteString(badge(string(task.Status), statusColors))
	b.WriteString("\n")

	b.WriteString(detailLabelStyle.Render("Priority: "))
	b.WriteString(badge(string(task.Priority), priorityColors))
	b.WriteString("\n")

	b.WriteString(detailLabelStyle.Render("Due: "))
	if task.DueDate != "" {
		b.WriteString(detailValueStyle.Render(task.DueDate))
	} else {
		b.WriteString(dimStyle.Render("none"))
	}
	b.WriteString("\n")

	b.WriteString(detailLabelStyle.Render("Assigned: "))
	switch u := m.snap.UserByID(task.AssignedTo); {
	case u != nil:
		b.WriteString(detailValueStyle.Render(u.Name))
	case task.AssignedTo != "":
		b.WriteString(dimStyle.Render("unknown user"))
	default:
		b.WriteString(dimStyle.Render("unassigned"))
	}
	b.WriteString("\n")

	if task.Description != "" {
		b.WriteString("\n")
		b.WriteString(detailLabelStyle.Render("Description:"))
		b.WriteString("\n")
		maxBodyLines := height - strings.Count(b.String(), "\n") - 2
		if maxBodyLines > 0 {
			wrapped := wordwrap.String(task.Description, width-2)
			lines := strings.Split(wrapped, "\n")
			if len(lines) > maxBodyLines {
				lines = lines[:maxBodyLines-1]
				lines = append(lines, "...")
			}
			b.WriteString(strings.Join(lines, "\n"))
		}
	}

	return b.String()
}

// renderRightPanel renders the discussion panel with the viewport.
func (m TaskDetailModel) renderRightPanel(task *domain.Task, width, height int) string {
	var b strings.Builder

	comments := m.comments()
	title := "Discussion"
	if len(comments) > 0 {
		title = fmt.Sprintf("Discussion (%d)", len(comments))
	}

	scrollHint := ""
	if len(comments) > 0 && !m.commentMode {
		if m.viewport.TotalLineCount() > m.viewport.Height {
			if m.viewport.AtTop() {
				scrollHint = " ↓"
			} else if m.viewport.AtBottom() {
				scrollHint = " ↑"
			} else {
				scrollHint = " ↕"
			}
		}
	}

	b.WriteString(detailLabelStyle.Render(title))
	b.WriteString(scrollIndicatorStyle.Render(scrollHint))
	b.WriteString("\n")

	if m.commentMode {
		b.WriteString("\n")
		if m.editCommentID != "" {
			b.WriteString(commentAuthorStyle.Render("Edit Comment"))
		} else {
			b.WriteString(commentAuthorStyle.Render("New Comment"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.commentInput.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Ctrl+S to save • ESC to cancel"))

		if len(comments) > 0 {
			b.WriteString("\n\n")
			b.WriteString(detailLabelStyle.Render(fmt.Sprintf("── %d existing comments ──", len(comments))))
		}
		return b.String()
	}

	if len(comments) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No comments yet"))
		if domain.CanComment(m.snap.CurrentUser) {
			b.WriteString("\n\n")
			b.WriteString(dimStyle.Render("Press 'c' to add a comment"))
		}
		return b.String()
	}

	b.WriteString(m.viewport.View())

	return b.String()
}

// updateViewportContent formats the comment thread for the viewport.
func (m *TaskDetailModel) updateViewportContent() {
	var b strings.Builder
	wrapWidth := m.viewport.Width - 4
	if wrapWidth < 30 {
		wrapWidth = 30
	}

	for i, c := range m.comments() {
		if i > 0 {
			b.WriteString("\n\n")
			b.WriteString(dimStyle.Render(strings.Repeat("─", minInt(20, wrapWidth))))
			b.WriteString("\n\n")
		}

		author := "(deleted user)"
		if u := m.snap.UserByID(c.UserID); u != nil {
			author = u.Name
		}

		if i == m.selectedComment {
			b.WriteString(scrollIndicatorStyle.Render("> "))
		}
		b.WriteString(commentAuthorStyle.Render(author))
		b.WriteString(" ")
		b.WriteString(commentTimeStyle.Render(formatTimeAgo(c.CreatedAt)))
		b.WriteString("\n")

		b.WriteString(commentBodyStyle.Render(wordwrap.String(c.Content, wrapWidth)))
	}

	m.viewport.SetContent(b.String())
}

// minInt returns the smaller of two ints.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
