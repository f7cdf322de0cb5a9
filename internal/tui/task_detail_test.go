package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// newTaskDetail opens the detail view for seeded task 1, which carries two
// comments (one by claire, one by alice).
func newTaskDetail(t *testing.T, email string) (*store.Store, TaskDetailModel) {
	t.Helper()

	s := store.New()
	s.Seed(store.DemoData())
	require.True(t, s.Login(email, "pw"))
	s.SelectProject("1")
	s.SelectTask("1")
	return s, NewTaskDetailModel(s, s.Snapshot())
}

func TestTaskDetailModel_EscReturnsToBoard(t *testing.T) {
	s, td := newTaskDetail(t, "alice@company.com")

	_, cmd := td.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Empty(t, snap.SelectedTaskID)
	assert.Equal(t, domain.ViewProjectDetail, snap.CurrentView)
	assert.Equal(t, "1", snap.SelectedProjectID)
}

func TestTaskDetailModel_AddComment(t *testing.T) {
	s, td := newTaskDetail(t, "bob@company.com")

	model, _ := td.Update(keyRunes('c'))
	td = model.(TaskDetailModel)
	require.True(t, td.commentMode)
	assert.True(t, td.inputActive())

	td.commentInput.SetValue("Je regarde ça demain.")
	model, cmd := td.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	td = model.(TaskDetailModel)
	require.NotNil(t, cmd)
	assert.False(t, td.commentMode)

	comments := s.Snapshot().CommentsForTask("1")
	require.Len(t, comments, 3)
	added := comments[2]
	assert.Equal(t, "Je regarde ça demain.", added.Content)
	assert.Equal(t, "2", added.UserID)
	assert.NotEmpty(t, added.CreatedAt)
}

func TestTaskDetailModel_EmptyCommentNotSaved(t *testing.T) {
	s, td := newTaskDetail(t, "bob@company.com")

	model, _ := td.Update(keyRunes('c'))
	td = model.(TaskDetailModel)
	td.commentInput.SetValue("   ")

	model, cmd := td.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	td = model.(TaskDetailModel)
	assert.Nil(t, cmd)
	assert.Len(t, s.Snapshot().CommentsForTask("1"), 2)
}

func TestTaskDetailModel_UnsavedCommentPrompt(t *testing.T) {
	s, td := newTaskDetail(t, "bob@company.com")

	model, _ := td.Update(keyRunes('c'))
	td = model.(TaskDetailModel)
	td.commentInput.SetValue("half-written thought")

	model, _ = td.Update(tea.KeyMsg{Type: tea.KeyEsc})
	td = model.(TaskDetailModel)
	require.True(t, td.confirmExit)
	assert.Contains(t, td.renderHints(), "Unsaved comment")

	// 's' saves and leaves comment mode
	model, cmd := td.Update(keyRunes('s'))
	td = model.(TaskDetailModel)
	require.NotNil(t, cmd)
	assert.False(t, td.commentMode)
	assert.Len(t, s.Snapshot().CommentsForTask("1"), 3)
}

func TestTaskDetailModel_DiscardUnsavedComment(t *testing.T) {
	s, td := newTaskDetail(t, "bob@company.com")

	model, _ := td.Update(keyRunes('c'))
	td = model.(TaskDetailModel)
	td.commentInput.SetValue("never mind")

	model, _ = td.Update(tea.KeyMsg{Type: tea.KeyEsc})
	td = model.(TaskDetailModel)
	model, _ = td.Update(keyRunes('y'))
	td = model.(TaskDetailModel)

	assert.False(t, td.commentMode)
	assert.False(t, td.confirmExit)
	assert.Len(t, s.Snapshot().CommentsForTask("1"), 2)
}

func TestTaskDetailModel_EditOwnComment(t *testing.T) {
	// Comment 2 on task 1 belongs to alice
	s, td := newTaskDetail(t, "alice@company.com")

	model, _ := td.Update(keyRunes('J'))
	td = model.(TaskDetailModel)
	model, _ = td.Update(keyRunes('J'))
	td = model.(TaskDetailModel)
	require.Equal(t, 1, td.selectedComment)

	model, _ = td.Update(keyRunes('e'))
	td = model.(TaskDetailModel)
	require.True(t, td.commentMode)
	assert.Equal(t, "2", td.editCommentID)

	td.commentInput.SetValue("Edited suggestion")
	model, _ = td.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	td = model.(TaskDetailModel)

	comments := s.Snapshot().CommentsForTask("1")
	require.Len(t, comments, 2)
	assert.Equal(t, "Edited suggestion", comments[1].Content)
	assert.Equal(t, "2024-02-11T14:15:00Z", comments[1].CreatedAt)
}

func TestTaskDetailModel_CannotEditOthersComment(t *testing.T) {
	// Comment 1 on task 1 belongs to claire, not bob
	_, td := newTaskDetail(t, "bob@company.com")

	model, _ := td.Update(keyRunes('J'))
	td = model.(TaskDetailModel)
	require.Equal(t, 0, td.selectedComment)

	model, _ = td.Update(keyRunes('e'))
	td = model.(TaskDetailModel)
	assert.False(t, td.commentMode)

	model, _ = td.Update(keyRunes('x'))
	td = model.(TaskDetailModel)
	assert.False(t, td.confirmDeleteComment)
}

func TestTaskDetailModel_DeleteOwnComment(t *testing.T) {
	s, td := newTaskDetail(t, "alice@company.com")

	model, _ := td.Update(keyRunes('J'))
	td = model.(TaskDetailModel)
	model, _ = td.Update(keyRunes('J'))
	td = model.(TaskDetailModel)

	model, _ = td.Update(keyRunes('x'))
	td = model.(TaskDetailModel)
	require.True(t, td.confirmDeleteComment)

	model, _ = td.Update(keyRunes('y'))
	td = model.(TaskDetailModel)

	comments := s.Snapshot().CommentsForTask("1")
	require.Len(t, comments, 1)
	assert.Equal(t, "1", comments[0].ID)
}

func TestTaskDetailModel_QuickStatusChange(t *testing.T) {
	s, td := newTaskDetail(t, "alice@company.com")

	_, cmd := td.Update(keyRunes('2'))
	require.NotNil(t, cmd)

	task := s.Snapshot().TaskByID("1")
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskInProgress, task.Status)
}

func TestTaskDetailModel_DeleteTask(t *testing.T) {
	s, td := newTaskDetail(t, "alice@company.com")

	model, _ := td.Update(keyRunes('d'))
	td = model.(TaskDetailModel)
	require.True(t, td.confirmDeleteTask)

	model, cmd := td.Update(keyRunes('y'))
	td = model.(TaskDetailModel)
	require.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Nil(t, snap.TaskByID("1"))
	assert.Empty(t, snap.SelectedTaskID)
	assert.Empty(t, snap.CommentsForTask("1"))
}

func TestTaskDetailModel_View(t *testing.T) {
	_, td := newTaskDetail(t, "alice@company.com")
	model, _ := td.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	td = model.(TaskDetailModel)

	view := td.View()
	assert.Contains(t, view, "Design de l'interface utilisateur")
	assert.Contains(t, view, "Discussion (2)")
	assert.Contains(t, view, "Claire Laurent")
}
