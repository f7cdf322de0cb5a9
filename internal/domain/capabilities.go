package domain

// Capability predicates centralize the role checks the views need.
// Every predicate tolerates a nil user (not logged in) and answers false.

// CanManageUsers reports whether u may open the user management view
// and create, edit, or delete accounts.
func CanManageUsers(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanCreateProject reports whether u may create or edit projects.
func CanCreateProject(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanDeleteProject reports whether u may delete a project.
func CanDeleteProject(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanCreateTask reports whether u may add a task to a project.
func CanCreateTask(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanDeleteTask reports whether u may delete a task.
func CanDeleteTask(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanComment reports whether u may write comments. Any logged-in user can.
func CanComment(u *User) bool {
	return u != nil
}

// CanEditComment reports whether u may edit or delete c. Authors only.
func CanEditComment(u *User, c *Comment) bool {
	return u != nil && c != nil && c.UserID == u.ID
}
