// Package store owns the authoritative application state: the four entity
// collections (users, projects, tasks, comments) and the session fields
// (current user, current view, selections). It follows the "deep modules"
// principle - a fixed set of mutation operations over a simple snapshot
// interface, with all cascade and navigation rules hidden inside.
//
// The store is constructed once in main and passed explicitly to every view
// model; there is no package-level instance. All operations are serialized by
// a mutex because Bubble Tea runs commands on their own goroutines.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/celine/taskdeck/internal/domain"
)

// Store manages the in-memory application state.
// The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	// Entity collections, insertion-order preserved.
	users    []domain.User
	projects []domain.Project
	tasks    []domain.Task
	comments []domain.Comment

	// Session state.
	currentUserID     string // empty when logged out
	currentView       domain.View
	selectedProjectID string
	selectedTaskID    string

	// Injection points for tests.
	newID func() string
	now   func() time.Time
}

// New creates an empty store showing the dashboard with nobody logged in.
func New() *Store {
	return &Store{
		currentView: domain.ViewDashboard,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Seed replaces the entity collections with the given dataset.
// Session state is untouched; auto-login is the caller's decision.
func (s *Store) Seed(data SeedData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]domain.User(nil), data.Users...)
	s.projects = copyProjects(data.Projects)
	s.tasks = append([]domain.Task(nil), data.Tasks...)
	s.comments = append([]domain.Comment(nil), data.Comments...)
}

// Reset restores the empty initial state. Intended for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.projects = nil
	s.tasks = nil
	s.comments = nil
	s.currentUserID = ""
	s.currentView = domain.ViewDashboard
	s.selectedProjectID = ""
	s.selectedTaskID = ""
}

// Login looks up a user by exact, case-sensitive email match and makes them
// the current user. The password is accepted but never checked against
// anything - a deliberate demo simplification, not a feature to harden.
// Returns false (with no state change) when no user has that email.
func (s *Store) Login(email, password string) bool {
	_ = password

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			s.currentUserID = u.ID
			return true
		}
	}
	return false
}

// Logout clears the current user and returns to the dashboard.
// Selections survive logout so navigation context is preserved across
// a re-login.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUserID = ""
	s.currentView = domain.ViewDashboard
}

// SetCurrentView unconditionally switches the active view.
func (s *Store) SetCurrentView(view domain.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentView = view
}

// SelectProject sets the selected project and derives the view from it:
// a non-empty id opens the project detail, an empty id returns to the
// project list.
func (s *Store) SelectProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedProjectID = id
	if id != "" {
		s.currentView = domain.ViewProjectDetail
	} else {
		s.currentView = domain.ViewProjects
	}
}

// SelectTask sets the selected task and derives the view from it:
// a non-empty id opens the task detail, an empty id returns to the
// owning project's detail.
func (s *Store) SelectTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedTaskID = id
	if id != "" {
		s.currentView = domain.ViewTaskDetail
	} else {
		s.currentView = domain.ViewProjectDetail
	}
}

// AddProject appends a project with a freshly assigned id and returns it.
// The ID field of data is ignored.
func (s *Store) AddProject(data domain.Project) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = s.newID()
	data.TeamMembers = append([]string(nil), data.TeamMembers...)
	s.projects = append(s.projects, data)
	return data
}

// UpdateProject merges the patch into the matching project.
// No-op when the id is absent.
func (s *Store) UpdateProject(id string, patch ProjectPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			patch.apply(&s.projects[i])
			return
		}
	}
}

// DeleteProject removes the project, every task belonging to it, and every
// comment belonging to a removed task. No-op when the id is absent.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept

	removedTasks := make(map[string]bool)
	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ProjectID == id {
			removedTasks[t.ID] = true
			continue
		}
		keptTasks = append(keptTasks, t)
	}
	s.tasks = keptTasks

	if len(removedTasks) > 0 {
		keptComments := s.comments[:0]
		for _, c := range s.comments {
			if !removedTasks[c.TaskID] {
				keptComments = append(keptComments, c)
			}
		}
		s.comments = keptComments
	}
}

// AddTask appends a task with a freshly assigned id and returns it.
func (s *Store) AddTask(data domain.Task) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = s.newID()
	s.tasks = append(s.tasks, data)
	return data
}

// UpdateTask merges the patch into the matching task.
// No-op when the id is absent.
func (s *Store) UpdateTask(id string, patch TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			patch.apply(&s.tasks[i])
			return
		}
	}
}

// DeleteTask removes the task and every comment attached to it.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	keptComments := s.comments[:0]
	for _, c := range s.comments {
		if c.TaskID != id {
			keptComments = append(keptComments, c)
		}
	}
	s.comments = keptComments
}

// AddComment appends a comment with a fresh id and the creation time stamped
// by the store, and returns it. CreatedAt supplied by the caller is ignored.
func (s *Store) AddComment(data domain.Comment) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = s.newID()
	data.CreatedAt = s.now().Format(time.RFC3339)
	s.comments = append(s.comments, data)
	return data
}

// UpdateComment merges the patch into the matching comment. CreatedAt is
// immutable and cannot be patched. No-op when the id is absent.
func (s *Store) UpdateComment(id string, patch CommentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID == id {
			patch.apply(&s.comments[i])
			return
		}
	}
}

// DeleteComment removes the comment. No cascade.
func (s *Store) DeleteComment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.comments = kept
}

// AddUser appends a user with a freshly assigned id and returns it.
func (s *Store) AddUser(data domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = s.newID()
	s.users = append(s.users, data)
	return data
}

// UpdateUser merges the patch into the matching user.
// No-op when the id is absent.
func (s *Store) UpdateUser(id string, patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			patch.apply(&s.users[i])
			return
		}
	}
}

// DeleteUser removes the user. The user's authored comments and task
// assignments are left dangling on purpose; views resolve them to "unknown".
// Deleting the current user ends the session.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept

	if s.currentUserID == id {
		s.currentUserID = ""
	}
}

// ProjectPatch is a partial update for a project. Nil fields are left alone.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
	Status      *domain.ProjectStatus
	TeamMembers *[]string
}

func (p ProjectPatch) apply(target *domain.Project) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.StartDate != nil {
		target.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		target.EndDate = *p.EndDate
	}
	if p.Status != nil {
		target.Status = *p.Status
	}
	if p.TeamMembers != nil {
		target.TeamMembers = append([]string(nil), *p.TeamMembers...)
	}
}

// TaskPatch is a partial update for a task. Nil fields are left alone.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	DueDate     *string
	ProjectID   *string
	AssignedTo  *string
	Priority    *domain.Priority
}

func (p TaskPatch) apply(target *domain.Task) {
	if p.Title != nil {
		target.Title = *p.Title
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Status != nil {
		target.Status = *p.Status
	}
	if p.DueDate != nil {
		target.DueDate = *p.DueDate
	}
	if p.ProjectID != nil {
		target.ProjectID = *p.ProjectID
	}
	if p.AssignedTo != nil {
		target.AssignedTo = *p.AssignedTo
	}
	if p.Priority != nil {
		target.Priority = *p.Priority
	}
}

// CommentPatch is a partial update for a comment. CreatedAt has no patch
// field: it is stamped once at creation and immutable thereafter.
type CommentPatch struct {
	Content *string
}

func (p CommentPatch) apply(target *domain.Comment) {
	if p.Content != nil {
		target.Content = *p.Content
	}
}

// UserPatch is a partial update for a user. Nil fields are left alone.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *domain.Role
	Avatar *string
}

func (p UserPatch) apply(target *domain.User) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Email != nil {
		target.Email = *p.Email
	}
	if p.Role != nil {
		target.Role = *p.Role
	}
	if p.Avatar != nil {
		target.Avatar = *p.Avatar
	}
}

func copyProjects(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		p.TeamMembers = append([]string(nil), p.TeamMembers...)
		out[i] = p
	}
	return out
}
