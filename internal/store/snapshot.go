package store

import "github.com/celine/taskdeck/internal/domain"

// Snapshot is an immutable copy of the whole application state at a point in
// time. Views render from a snapshot and never reach back into the store for
// reads; mutations go through the store's operations, after which consumers
// take a fresh snapshot.
type Snapshot struct {
	Users    []domain.User
	Projects []domain.Project
	Tasks    []domain.Task
	Comments []domain.Comment

	CurrentUser       *domain.User // nil when logged out
	CurrentView       domain.View
	SelectedProjectID string // empty when nothing selected
	SelectedTaskID    string
}

// Snapshot returns a deep copy of the current state. Mutating the returned
// value has no effect on the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Users:             append([]domain.User(nil), s.users...),
		Projects:          copyProjects(s.projects),
		Tasks:             append([]domain.Task(nil), s.tasks...),
		Comments:          append([]domain.Comment(nil), s.comments...),
		CurrentView:       s.currentView,
		SelectedProjectID: s.selectedProjectID,
		SelectedTaskID:    s.selectedTaskID,
	}

	if s.currentUserID != "" {
		for _, u := range s.users {
			if u.ID == s.currentUserID {
				user := u
				snap.CurrentUser = &user
				break
			}
		}
	}

	return snap
}

// UserByID resolves a user id, returning nil for a dangling reference.
func (s Snapshot) UserByID(id string) *domain.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			u := s.Users[i]
			return &u
		}
	}
	return nil
}

// ProjectByID resolves a project id, returning nil when absent.
func (s Snapshot) ProjectByID(id string) *domain.Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			p := s.Projects[i]
			return &p
		}
	}
	return nil
}

// TaskByID resolves a task id, returning nil when absent.
func (s Snapshot) TaskByID(id string) *domain.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			t := s.Tasks[i]
			return &t
		}
	}
	return nil
}

// SelectedProject resolves the selected project, nil when the selection is
// empty or dangling.
func (s Snapshot) SelectedProject() *domain.Project {
	if s.SelectedProjectID == "" {
		return nil
	}
	return s.ProjectByID(s.SelectedProjectID)
}

// SelectedTask resolves the selected task, nil when the selection is empty
// or dangling.
func (s Snapshot) SelectedTask() *domain.Task {
	if s.SelectedTaskID == "" {
		return nil
	}
	return s.TaskByID(s.SelectedTaskID)
}

// TasksForProject returns the project's tasks in insertion order.
func (s Snapshot) TasksForProject(projectID string) []domain.Task {
	var out []domain.Task
	for _, t := range s.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// CommentsForTask returns the task's comments in insertion order.
func (s Snapshot) CommentsForTask(taskID string) []domain.Comment {
	var out []domain.Comment
	for _, c := range s.Comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out
}

// ActiveProjects returns the projects whose status is Active.
func (s Snapshot) ActiveProjects() []domain.Project {
	var out []domain.Project
	for _, p := range s.Projects {
		if p.Status == domain.ProjectActive {
			out = append(out, p)
		}
	}
	return out
}

// TasksAssignedTo returns the tasks assigned to the given user id.
func (s Snapshot) TasksAssignedTo(userID string) []domain.Task {
	var out []domain.Task
	for _, t := range s.Tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out
}
