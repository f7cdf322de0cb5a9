// Package domain defines the entity types shared by the store and the views.
// These types are plain data; all lifecycle rules live in the store.
package domain

// Role determines what a user may do in the UI. See capabilities.go.
type Role string

// Roles.
const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// User is an account that can log in, be assigned tasks, and write comments.
type User struct {
	ID     string // unique, stable handle
	Name   string
	Email  string // unique among users, used for login lookup
	Role   Role
	Avatar string // opaque image reference, may be empty
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project statuses.
const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectSuspended ProjectStatus = "Suspended"
)

// Project groups tasks and a team.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   string // YYYY-MM-DD; never validated against EndDate
	EndDate     string // YYYY-MM-DD
	Status      ProjectStatus
	TeamMembers []string // user ids, order-preserving, duplicates kept as given
}

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

// Task statuses, in board column order.
const (
	TaskTodo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

// TaskStatuses lists all statuses in column order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// Priority of a task.
type Priority string

// Priorities.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Task is a unit of work inside a project.
// ProjectID and AssignedTo are not validated against existing entities;
// views must resolve dangling references to an "unknown" placeholder.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	DueDate     string // YYYY-MM-DD
	ProjectID   string
	AssignedTo  string // user id
	Priority    Priority
}

// Comment is a note left on a task.
type Comment struct {
	ID        string
	Content   string
	TaskID    string
	UserID    string // author; may dangle after the user is deleted
	CreatedAt string // RFC3339, stamped by the store at creation, immutable
}

// View identifies one of the application's screens.
type View string

// Views.
const (
	ViewDashboard     View = "dashboard"
	ViewProjects      View = "projects"
	ViewProjectDetail View = "project-detail"
	ViewTaskDetail    View = "task-detail"
	ViewUsers         View = "users"
)
