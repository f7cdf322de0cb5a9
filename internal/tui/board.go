package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// Layout constants
const (
	minColumnWidth   = 20
	maxColumnWidth   = 40
	boardHeaderLines = 2 // title line + hint line
)

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	moveModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)
)

// taskFormFieldCount is the number of text inputs in the task form.
const taskFormFieldCount = 3 // title, description, due date

// BoardModel is the kanban view for a single project. Tasks are grouped
// into one column per task status.
type BoardModel struct {
	store     *store.Store
	snap      store.Snapshot
	projectID string

	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model

	// Board state. Columns are fixed: one per entry in domain.TaskStatuses.
	columns        [][]domain.Task // column index -> visible tasks
	selectedColumn int
	selectedCard   []int // per column
	scrollOffset   []int // per column

	// View state
	width        int
	height       int
	showHelp     bool
	filterMode   bool
	filterText   string
	filterMyOnly bool
	moveMode     bool

	// Task form state
	editing      bool
	editID       string
	inputs       [taskFormFieldCount]textinput.Model
	formAssignee int // index into assignable users, -1 = unassigned
	formPriority domain.Priority
	formFocus    int

	confirmingDelete bool
	deleteTarget     domain.Task
}

// NewBoardModel creates a board for the currently selected project.
func NewBoardModel(s *store.Store, snap store.Snapshot) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	m := BoardModel{
		store:        s,
		projectID:    snap.SelectedProjectID,
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		filterInput:  ti,
		selectedCard: make([]int, len(domain.TaskStatuses)),
		scrollOffset: make([]int, len(domain.TaskStatuses)),
	}
	m.refresh(snap)
	return m
}

// Init is a no-op.
func (m BoardModel) Init() tea.Cmd { return nil }

func (m BoardModel) inputActive() bool {
	return m.editing || m.filterMode || m.confirmingDelete
}

// refresh regroups the project's tasks into columns from a new snapshot.
func (m *BoardModel) refresh(snap store.Snapshot) {
	m.snap = snap
	m.projectID = snap.SelectedProjectID
	m.applyFilter()
}

// applyFilter regroups tasks into columns honoring the text and
// "my tasks" filters, then clamps selection and scroll state.
func (m *BoardModel) applyFilter() {
	m.columns = make([][]domain.Task, len(domain.TaskStatuses))

	for _, t := range m.snap.TasksForProject(m.projectID) {
		if m.filterText != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(m.filterText)) {
			continue
		}
		if m.filterMyOnly && m.snap.CurrentUser != nil && t.AssignedTo != m.snap.CurrentUser.ID {
			continue
		}
		for i, status := range domain.TaskStatuses {
			if t.Status == status {
				m.columns[i] = append(m.columns[i], t)
				break
			}
		}
	}

	for i := range m.columns {
		m.scrollOffset[i] = 0
		if m.selectedCard[i] >= len(m.columns[i]) {
			if len(m.columns[i]) > 0 {
				m.selectedCard[i] = len(m.columns[i]) - 1
			} else {
				m.selectedCard[i] = 0
			}
		}
	}
}

// Update handles messages.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmingDelete = false
			m.store.DeleteTask(m.deleteTarget.ID)
			return m, refresh
		case "n", "N", "esc":
			m.confirmingDelete = false
		}
		return m, nil
	}

	if m.editing {
		return m.handleFormKey(msg)
	}

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = m.filterInput.Value()
			(&m).applyFilter()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// Move mode
	if m.moveMode {
		return m.handleMoveMode(msg)
	}

	switch msg.String() {
	case "?":
		m.showHelp = true
	case "/":
		m.filterMode = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case "esc":
		m.store.SelectProject("")
		return m, refresh
	case "h", "left":
		if m.selectedColumn > 0 {
			m.selectedColumn--
		}
	case "l", "right":
		if m.selectedColumn < len(domain.TaskStatuses)-1 {
			m.selectedColumn++
		}
	case "j", "down":
		(&m).moveCardSelection(1)
	case "k", "up":
		(&m).moveCardSelection(-1)
	case "g":
		(&m).jumpToCard(0)
	case "G":
		(&m).jumpToCard(-1)
	case "m":
		if m.selectedTask() != nil {
			m.moveMode = true
		}
	case "a":
		m.filterMyOnly = !m.filterMyOnly
		(&m).applyFilter()
	case "n":
		if domain.CanCreateTask(m.snap.CurrentUser) {
			m.openForm(nil)
			return m, textinput.Blink
		}
	case "e":
		if t := m.selectedTask(); t != nil && domain.CanCreateTask(m.snap.CurrentUser) {
			m.openForm(t)
			return m, textinput.Blink
		}
	case "d":
		if t := m.selectedTask(); t != nil && domain.CanDeleteTask(m.snap.CurrentUser) {
			m.confirmingDelete = true
			m.deleteTarget = *t
		}
	case "enter":
		if t := m.selectedTask(); t != nil {
			m.store.SelectTask(t.ID)
			return m, refresh
		}
	}

	return m, nil
}

// handleMoveMode moves the selected task to the column chosen by number.
func (m BoardModel) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "m":
		m.moveMode = false
		return m, nil
	case "1", "2", "3":
		idx := int(msg.Runes[0] - '1')
		m.moveMode = false
		if t := m.selectedTask(); t != nil && idx < len(domain.TaskStatuses) {
			status := domain.TaskStatuses[idx]
			m.store.UpdateTask(t.ID, store.TaskPatch{Status: &status})
			return m, refresh
		}
	}
	return m, nil
}

// selectedTask returns the task under the cursor, or nil.
func (m BoardModel) selectedTask() *domain.Task {
	cards := m.columns[m.selectedColumn]
	if len(cards) == 0 {
		return nil
	}
	idx := m.selectedCard[m.selectedColumn]
	if idx >= len(cards) {
		idx = 0
	}
	t := cards[idx]
	return &t
}

// moveCardSelection moves the card selection up or down by delta.
func (m *BoardModel) moveCardSelection(delta int) {
	cards := m.columns[m.selectedColumn]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[m.selectedColumn] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(cards) {
		newIdx = len(cards) - 1
	}

	m.selectedCard[m.selectedColumn] = newIdx
	m.adjustScroll()
}

// jumpToCard jumps to a card index. Use -1 for the last card.
func (m *BoardModel) jumpToCard(idx int) {
	cards := m.columns[m.selectedColumn]
	if len(cards) == 0 {
		return
	}
	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}
	m.selectedCard[m.selectedColumn] = idx
	m.adjustScroll()
}

// adjustScroll keeps the selected card visible.
func (m *BoardModel) adjustScroll() {
	col := m.selectedColumn
	selectedIdx := m.selectedCard[col]
	offset := m.scrollOffset[col]

	visible := m.height - boardHeaderLines - 5 // borders, column header, indicators
	if visible < 3 {
		visible = 3
	}

	if selectedIdx < offset {
		m.scrollOffset[col] = selectedIdx
	}
	if selectedIdx >= offset+visible {
		m.scrollOffset[col] = selectedIdx - visible + 1
	}
}

// View renders the board, the task form, or the delete confirmation.
func (m BoardModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	if m.confirmingDelete {
		prompt := fmt.Sprintf("Delete task %q and its comments? [y/n]", m.deleteTarget.Title)
		return "\n" + ErrorStyle.Render(prompt)
	}
	if m.editing {
		return m.renderForm()
	}

	var sections []string
	sections = append(sections, m.renderTitle(width))
	sections = append(sections, m.renderHints(width))

	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}
	if m.moveMode {
		sections = append(sections, moveModeStyle.Render("MOVE")+" Press 1-3 to pick a column, ESC to cancel")
	}

	boardHeight := height - boardHeaderLines
	if m.filterMode {
		boardHeight--
	}
	if m.moveMode {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	var mainContent string
	if m.showHelp {
		mainContent = m.help.View(width)
	} else {
		mainContent = m.renderColumns(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the project name with active filter indicators.
func (m BoardModel) renderTitle(width int) string {
	name := "Project"
	if p := m.snap.ProjectByID(m.projectID); p != nil {
		name = p.Name
	}

	total := 0
	for _, col := range m.columns {
		total += len(col)
	}

	var statusParts []string
	statusParts = append(statusParts, fmt.Sprintf("%d tasks", total))
	if m.filterMyOnly {
		statusParts = append(statusParts, "@me")
	}
	if m.filterText != "" {
		statusParts = append(statusParts, "/"+m.filterText)
	}
	statusParts = append(statusParts, "[?]help")
	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(name) - len(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(name) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

func (m BoardModel) renderHints(width int) string {
	left := "h/l:col j/k:card m:move enter:open n:new e:edit d:del a:@me /:filter esc:back"

	colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(domain.TaskStatuses))
	cards := m.columns[m.selectedColumn]
	right := colPos
	if len(cards) > 0 {
		right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[m.selectedColumn]+1, len(cards))
	}

	padding := width - len(left) - len(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderColumns renders the three status columns side by side.
func (m BoardModel) renderColumns(totalWidth, totalHeight int) string {
	numCols := len(domain.TaskStatuses)

	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	colWidth := totalWidth / numCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	views := make([]string, numCols)
	for i := range domain.TaskStatuses {
		views[i] = m.renderColumn(i, colWidth, colContentHeight, innerWidth)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// renderColumn renders one status column with scroll indicators.
func (m BoardModel) renderColumn(col, width, innerHeight, innerWidth int) string {
	cards := m.columns[col]
	selected := col == m.selectedColumn

	headerText := fmt.Sprintf("[%d] %s (%d)", col+1, domain.TaskStatuses[col], len(cards))
	if len(headerText) > innerWidth {
		headerText = headerText[:innerWidth-1] + "…"
	}

	offset := m.scrollOffset[col]
	selectedIdx := m.selectedCard[col]

	cardSlots := innerHeight - 1
	if cardSlots < 1 {
		cardSlots = 1
	}

	needUp := offset > 0
	available := cardSlots
	if needUp {
		available--
	}
	endIdx := offset + available
	if endIdx > len(cards) {
		endIdx = len(cards)
	}
	needDown := endIdx < len(cards)
	if needDown {
		available--
		endIdx = offset + available
		if endIdx > len(cards) {
			endIdx = len(cards)
		}
	}

	var lines []string
	lines = append(lines, columnHeaderStyle.Render(headerText))

	if needUp {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", offset)))
	}

	for i := offset; i < endIdx; i++ {
		text := m.formatCardText(cards[i], innerWidth-3)
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> "+text))
		} else {
			lines = append(lines, cardStyle.Render("  "+text))
		}
	}

	if remaining := len(cards) - endIdx; needDown && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = lipgloss.Color("205")
	}

	colStyle := lipgloss.NewStyle().
		Width(width - 2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(strings.Join(lines, "\n"))
}

// formatCardText formats a task card, right-aligning the assignee and
// priority tags. A dangling assignee reference shows as "?".
func (m BoardModel) formatCardText(t domain.Task, maxWidth int) string {
	title := t.Title

	suffix := string(t.Priority)
	if t.AssignedTo != "" {
		if u := m.snap.UserByID(t.AssignedTo); u != nil {
			suffix = "@" + firstName(u.Name) + " " + suffix
		} else {
			suffix = "? " + suffix
		}
	}

	availableForTitle := maxWidth - len(suffix) - 1
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	if len(title) > availableForTitle {
		title = title[:availableForTitle-1] + "…"
	}

	padding := maxWidth - len(title) - len(suffix)
	if padding < 1 {
		padding = 1
	}

	rendered := badge(string(t.Priority), priorityColors)
	if cut := len(suffix) - len(string(t.Priority)); cut > 0 {
		rendered = dimStyle.Render(suffix[:cut]) + rendered
	}

	return title + strings.Repeat(" ", padding) + rendered
}

// firstName returns the first word of a full name.
func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// assignableUsers returns the users a task in this project can be
// assigned to: the project team, or everyone when the team is empty.
func (m BoardModel) assignableUsers() []domain.User {
	p := m.snap.ProjectByID(m.projectID)
	if p == nil || len(p.TeamMembers) == 0 {
		return m.snap.Users
	}
	var out []domain.User
	for _, id := range p.TeamMembers {
		if u := m.snap.UserByID(id); u != nil {
			out = append(out, *u)
		}
	}
	if len(out) == 0 {
		return m.snap.Users
	}
	return out
}

// Task form. Focus layout: text inputs, then assignee and priority rows,
// then the submit row.
func (m *BoardModel) openForm(t *domain.Task) {
	placeholders := [taskFormFieldCount]string{"Task title", "Description", "Due date (YYYY-MM-DD)"}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = placeholders[i]
		m.inputs[i].CharLimit = 200
	}

	m.editing = true
	m.editID = ""
	m.formAssignee = -1
	m.formPriority = domain.PriorityMedium
	m.formFocus = 0
	m.inputs[0].Focus()

	if t != nil {
		m.editID = t.ID
		m.inputs[0].SetValue(t.Title)
		m.inputs[1].SetValue(t.Description)
		m.inputs[2].SetValue(t.DueDate)
		m.formPriority = t.Priority
		for i, u := range m.assignableUsers() {
			if u.ID == t.AssignedTo {
				m.formAssignee = i
				break
			}
		}
	}
}

func (m BoardModel) taskFormRowCount() int {
	return taskFormFieldCount + 3 // assignee, priority, submit
}

func (m BoardModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	assigneeRow := taskFormFieldCount
	priorityRow := assigneeRow + 1
	submitRow := priorityRow + 1

	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil

	case "tab", "down":
		m.setFormFocus(m.formFocus + 1)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.setFormFocus(m.formFocus - 1)
		return m, textinput.Blink

	case "left", "right":
		forward := msg.String() == "right"
		switch m.formFocus {
		case assigneeRow:
			m.cycleAssignee(forward)
			return m, nil
		case priorityRow:
			m.formPriority = cyclePriority(m.formPriority, forward)
			return m, nil
		}

	case "enter":
		switch m.formFocus {
		case submitRow:
			m.submitForm()
			m.editing = false
			return m, refresh
		case assigneeRow:
			m.cycleAssignee(true)
			return m, nil
		case priorityRow:
			m.formPriority = cyclePriority(m.formPriority, true)
			return m, nil
		}
		m.setFormFocus(m.formFocus + 1)
		return m, textinput.Blink
	}

	if m.formFocus < taskFormFieldCount {
		var cmd tea.Cmd
		m.inputs[m.formFocus], cmd = m.inputs[m.formFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BoardModel) setFormFocus(idx int) {
	rows := m.taskFormRowCount()
	if idx < 0 {
		idx = rows - 1
	}
	if idx >= rows {
		idx = 0
	}
	m.formFocus = idx

	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// cycleAssignee steps through the assignable users, with -1 meaning
// unassigned.
func (m *BoardModel) cycleAssignee(forward bool) {
	n := len(m.assignableUsers())
	if forward {
		m.formAssignee++
		if m.formAssignee >= n {
			m.formAssignee = -1
		}
		return
	}
	m.formAssignee--
	if m.formAssignee < -1 {
		m.formAssignee = n - 1
	}
}

func (m *BoardModel) submitForm() {
	title := strings.TrimSpace(m.inputs[0].Value())
	desc := strings.TrimSpace(m.inputs[1].Value())
	due := strings.TrimSpace(m.inputs[2].Value())
	priority := m.formPriority

	assignedTo := ""
	if users := m.assignableUsers(); m.formAssignee >= 0 && m.formAssignee < len(users) {
		assignedTo = users[m.formAssignee].ID
	}

	if m.editID == "" {
		m.store.AddTask(domain.Task{
			Title:       title,
			Description: desc,
			Status:      domain.TaskStatuses[m.selectedColumn],
			DueDate:     due,
			ProjectID:   m.projectID,
			AssignedTo:  assignedTo,
			Priority:    priority,
		})
		return
	}

	m.store.UpdateTask(m.editID, store.TaskPatch{
		Title:       &title,
		Description: &desc,
		DueDate:     &due,
		AssignedTo:  &assignedTo,
		Priority:    &priority,
	})
}

func (m BoardModel) renderForm() string {
	assigneeRow := taskFormFieldCount
	priorityRow := assigneeRow + 1
	submitRow := priorityRow + 1

	var b strings.Builder
	if m.editID == "" {
		b.WriteString(TitleStyle.Render("New task"))
	} else {
		b.WriteString(TitleStyle.Render("Edit task"))
	}
	b.WriteString("\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	assignee := "Unassigned"
	if users := m.assignableUsers(); m.formAssignee >= 0 && m.formAssignee < len(users) {
		assignee = users[m.formAssignee].Name
	}
	b.WriteString(formRow(m.formFocus == assigneeRow, "Assignee: ", valueStyle.Render(assignee)+dimStyle.Render(" (←/→ to change)")))
	b.WriteString("\n")
	b.WriteString(formRow(m.formFocus == priorityRow, "Priority: ", badge(string(m.formPriority), priorityColors)+dimStyle.Render(" (←/→ to change)")))
	b.WriteString("\n\n")
	b.WriteString(formRow(m.formFocus == submitRow, "", "[ Save ]"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab:next field enter:save esc:cancel"))

	return b.String()
}

// cyclePriority steps through the priorities in order.
func cyclePriority(p domain.Priority, forward bool) domain.Priority {
	order := []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	for i, v := range order {
		if v == p {
			if forward {
				return order[(i+1)%len(order)]
			}
			return order[(i+len(order)-1)%len(order)]
		}
	}
	return order[0]
}
