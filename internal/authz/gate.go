// Package authz is the single authorization gate consulted before every
// mutation. It is a pure predicate over (identity present, role, action);
// all role checks in the HTTP layer go through CanPerform so the
// instructor/admin membership test lives in exactly one place.
package authz

import "minilms-backend/internal/domain"

type Action string

const (
	ActionCreateCourse   Action = "create-course"
	ActionEditCourse     Action = "edit-course"
	ActionDeleteCourse   Action = "delete-course"
	ActionManageContent  Action = "manage-content" // lessons and quizzes
	ActionRevalidate     Action = "revalidate"
	ActionEnroll         Action = "enroll"
	ActionSubmitProgress Action = "submit-progress"
	ActionSubmitQuiz     Action = "submit-quiz"
	ActionViewDashboard  Action = "view-dashboard"
	ActionViewCatalog    Action = "view-catalog"
	ActionViewCourse     Action = "view-course"
)

type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means no caller identity was present; the client
	// should log in.
	DenyUnauthenticated
	// DenyForbidden means the caller is known but the role is insufficient.
	DenyForbidden
)

// instructorOnly actions mutate course content.
var instructorOnly = map[Action]bool{
	ActionCreateCourse:  true,
	ActionEditCourse:    true,
	ActionDeleteCourse:  true,
	ActionManageContent: true,
	ActionRevalidate:    true,
}

// authenticatedOnly actions are open to every signed-in role.
var authenticatedOnly = map[Action]bool{
	ActionEnroll:         true,
	ActionSubmitProgress: true,
	ActionSubmitQuiz:     true,
	ActionViewDashboard:  true,
}

// CanPerform decides whether a caller may perform action. authenticated
// reports whether a caller identity is present at all; role is only
// meaningful when it is.
func CanPerform(role domain.Role, authenticated bool, action Action) Decision {
	switch {
	case instructorOnly[action]:
		if !authenticated {
			return DenyUnauthenticated
		}
		if role == domain.RoleInstructor || role == domain.RoleAdmin {
			return Allow
		}
		return DenyForbidden
	case authenticatedOnly[action]:
		if !authenticated {
			return DenyUnauthenticated
		}
		return Allow
	default:
		// view-catalog, view-course and anything unclassified are public reads.
		return Allow
	}
}
