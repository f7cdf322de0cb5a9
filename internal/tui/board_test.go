package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// createTestStore returns a seeded store with alice (admin) logged in and
// project 1 selected. Project 1 has one task per status column.
func createTestStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New()
	s.Seed(store.DemoData())
	require.True(t, s.Login("alice@company.com", "pw"))
	s.SelectProject("1")
	return s
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBoardModel_ColumnGrouping(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	require.Len(t, board.columns, 3)

	// Project 1: task 3 todo, task 2 in progress, task 1 done
	assert.Len(t, board.columns[0], 1)
	assert.Len(t, board.columns[1], 1)
	assert.Len(t, board.columns[2], 1)
	assert.Equal(t, "3", board.columns[0][0].ID)
	assert.Equal(t, "2", board.columns[1][0].ID)
	assert.Equal(t, "1", board.columns[2][0].ID)
}

func TestBoardModel_TextFilter(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	board.filterText = "paiement"
	(&board).applyFilter()

	assert.Len(t, board.columns[0], 1)
	assert.Empty(t, board.columns[1])
	assert.Empty(t, board.columns[2])

	// Matching is case insensitive
	board.filterText = "PAIEMENT"
	(&board).applyFilter()
	assert.Len(t, board.columns[0], 1)
}

func TestBoardModel_MyTasksFilter(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	// Alice (user 1) is only assigned task 3 in project 1
	model, _ := board.Update(keyRunes('a'))
	board = model.(BoardModel)

	assert.True(t, board.filterMyOnly)
	assert.Len(t, board.columns[0], 1)
	assert.Empty(t, board.columns[1])
	assert.Empty(t, board.columns[2])

	// Toggling again restores everything
	model, _ = board.Update(keyRunes('a'))
	board = model.(BoardModel)
	assert.False(t, board.filterMyOnly)
	assert.Len(t, board.columns[1], 1)
}

func TestBoardModel_Navigation(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	assert.Equal(t, 0, board.selectedColumn)

	model, _ := board.Update(keyRunes('l'))
	board = model.(BoardModel)
	assert.Equal(t, 1, board.selectedColumn)

	model, _ = board.Update(keyRunes('l'))
	board = model.(BoardModel)
	assert.Equal(t, 2, board.selectedColumn)

	// Right edge clamps
	model, _ = board.Update(keyRunes('l'))
	board = model.(BoardModel)
	assert.Equal(t, 2, board.selectedColumn)

	model, _ = board.Update(keyRunes('h'))
	board = model.(BoardModel)
	assert.Equal(t, 1, board.selectedColumn)
}

func TestBoardModel_MoveTask(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	// Select the To Do column (task 3) and enter move mode
	model, _ := board.Update(keyRunes('m'))
	board = model.(BoardModel)
	assert.True(t, board.moveMode)

	model, cmd := board.Update(keyRunes('3'))
	board = model.(BoardModel)
	assert.False(t, board.moveMode)
	require.NotNil(t, cmd)

	task := s.Snapshot().TaskByID("3")
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskDone, task.Status)

	// The board regroups once the refresh round-trips
	board.refresh(s.Snapshot())
	assert.Empty(t, board.columns[0])
	assert.Len(t, board.columns[2], 2)
}

func TestBoardModel_OpenTask(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	_, cmd := board.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Equal(t, "3", snap.SelectedTaskID)
	assert.Equal(t, domain.ViewTaskDetail, snap.CurrentView)
}

func TestBoardModel_EscReturnsToProjects(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	_, cmd := board.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Empty(t, snap.SelectedProjectID)
	assert.Equal(t, domain.ViewProjects, snap.CurrentView)
}

func TestBoardModel_DeleteTaskConfirm(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	model, _ := board.Update(keyRunes('d'))
	board = model.(BoardModel)
	require.True(t, board.confirmingDelete)
	assert.True(t, board.inputActive())

	// 'n' cancels
	model, _ = board.Update(keyRunes('n'))
	board = model.(BoardModel)
	assert.False(t, board.confirmingDelete)
	assert.NotNil(t, s.Snapshot().TaskByID("3"))

	// 'y' deletes
	model, _ = board.Update(keyRunes('d'))
	board = model.(BoardModel)
	model, _ = board.Update(keyRunes('y'))
	board = model.(BoardModel)
	assert.Nil(t, s.Snapshot().TaskByID("3"))
}

func TestBoardModel_MemberCannotCreate(t *testing.T) {
	s := store.New()
	s.Seed(store.DemoData())
	require.True(t, s.Login("bob@company.com", "pw"))
	s.SelectProject("1")

	board := NewBoardModel(s, s.Snapshot())

	model, _ := board.Update(keyRunes('n'))
	board = model.(BoardModel)
	assert.False(t, board.editing)

	model, _ = board.Update(keyRunes('d'))
	board = model.(BoardModel)
	assert.False(t, board.confirmingDelete)
}

func TestBoardModel_CreateTaskForm(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	model, _ := board.Update(keyRunes('n'))
	board = model.(BoardModel)
	require.True(t, board.editing)
	assert.True(t, board.inputActive())

	board.inputs[0].SetValue("Write release notes")
	board.inputs[2].SetValue("2024-04-01")
	board.formFocus = board.taskFormRowCount() - 1

	model, _ = board.Update(tea.KeyMsg{Type: tea.KeyEnter})
	board = model.(BoardModel)
	assert.False(t, board.editing)

	snap := s.Snapshot()
	tasks := snap.TasksForProject("1")
	require.Len(t, tasks, 4)
	created := tasks[3]
	assert.Equal(t, "Write release notes", created.Title)
	assert.Equal(t, domain.TaskTodo, created.Status)
	assert.Equal(t, "2024-04-01", created.DueDate)
	assert.NotEmpty(t, created.ID)
}

func TestBoardModel_View_NotPanic(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())

	require.NotPanics(t, func() {
		board.View()
	})

	model, _ := board.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	board = model.(BoardModel)
	assert.Equal(t, 120, board.width)

	require.NotPanics(t, func() {
		view := board.View()
		assert.NotEmpty(t, view)
	})
}

func TestBoardModel_AllColumnsRendered(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s, s.Snapshot())
	board.width = 150
	board.height = 30

	view := board.View()
	assert.Contains(t, view, "To Do")
	assert.Contains(t, view, "In Progress")
	assert.Contains(t, view, "Done")
	assert.Contains(t, view, "Site Web E-commerce")
}
