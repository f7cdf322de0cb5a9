package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/celine/taskdeck/internal/domain"
	"github.com/celine/taskdeck/internal/store"
)

// renderHeader renders the top navigation bar: app name, view tabs, and the
// logged-in user. The Users tab only appears for admins.
func renderHeader(snap store.Snapshot, width int) string {
	if width == 0 {
		width = 80
	}

	type navItem struct {
		label string
		view  domain.View
	}

	items := []navItem{
		{"[D]ashboard", domain.ViewDashboard},
		{"[P]rojects", domain.ViewProjects},
	}
	if domain.CanManageUsers(snap.CurrentUser) {
		items = append(items, navItem{"[U]sers", domain.ViewUsers})
	}

	var nav []string
	for _, item := range items {
		active := snap.CurrentView == item.view
		// Detail views highlight their parent tab.
		if item.view == domain.ViewProjects &&
			(snap.CurrentView == domain.ViewProjectDetail || snap.CurrentView == domain.ViewTaskDetail) {
			active = true
		}
		if active {
			nav = append(nav, navActiveStyle.Render(item.label))
		} else {
			nav = append(nav, navItemStyle.Render(item.label))
		}
	}

	left := titleStyle.Render("taskdeck") + "  " + strings.Join(nav, " ")

	right := ""
	if snap.CurrentUser != nil {
		right = dimStyle.Render(fmt.Sprintf("%s (%s) · ctrl+l logout", snap.CurrentUser.Name, snap.CurrentUser.Role))
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + right
}
