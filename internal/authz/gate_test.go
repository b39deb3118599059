package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minilms-backend/internal/domain"
)

func TestCanPerformCourseMutations(t *testing.T) {
	cases := []struct {
		name          string
		role          domain.Role
		authenticated bool
		action        Action
		want          Decision
	}{
		{"student cannot delete course", domain.RoleStudent, true, ActionDeleteCourse, DenyForbidden},
		{"instructor can delete course", domain.RoleInstructor, true, ActionDeleteCourse, Allow},
		{"admin can delete course", domain.RoleAdmin, true, ActionDeleteCourse, Allow},
		{"student cannot create course", domain.RoleStudent, true, ActionCreateCourse, DenyForbidden},
		{"instructor can create course", domain.RoleInstructor, true, ActionCreateCourse, Allow},
		{"student cannot edit course", domain.RoleStudent, true, ActionEditCourse, DenyForbidden},
		{"student cannot manage content", domain.RoleStudent, true, ActionManageContent, DenyForbidden},
		{"admin can revalidate", domain.RoleAdmin, true, ActionRevalidate, Allow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanPerform(tc.role, tc.authenticated, tc.action))
		})
	}
}

func TestCanPerformDistinguishesUnauthenticated(t *testing.T) {
	// No identity at all: the signal must tell the client to log in, not
	// that the role is insufficient.
	assert.Equal(t, DenyUnauthenticated, CanPerform("", false, ActionDeleteCourse))
	assert.Equal(t, DenyUnauthenticated, CanPerform("", false, ActionEnroll))
	assert.Equal(t, DenyUnauthenticated, CanPerform("", false, ActionSubmitProgress))
	assert.Equal(t, DenyUnauthenticated, CanPerform("", false, ActionSubmitQuiz))
	assert.Equal(t, DenyUnauthenticated, CanPerform("", false, ActionViewDashboard))
}

func TestCanPerformParticipationActions(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleInstructor, domain.RoleAdmin} {
		assert.Equal(t, Allow, CanPerform(role, true, ActionEnroll))
		assert.Equal(t, Allow, CanPerform(role, true, ActionSubmitProgress))
		assert.Equal(t, Allow, CanPerform(role, true, ActionSubmitQuiz))
	}
}

func TestCanPerformPublicReads(t *testing.T) {
	assert.Equal(t, Allow, CanPerform("", false, ActionViewCatalog))
	assert.Equal(t, Allow, CanPerform("", false, ActionViewCourse))
	assert.Equal(t, Allow, CanPerform(domain.RoleStudent, true, ActionViewCatalog))
}
