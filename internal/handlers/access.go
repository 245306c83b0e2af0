package handlers

import (
	"context"

	"school-backend/internal/middleware"
	"school-backend/internal/models"
)

// canViewStudent reports whether the caller may read fee records and
// financial documents belonging to the given student. Staff and teachers
// see every student; a parent only the one linked to their account.
func canViewStudent(ctx context.Context, studentID int) bool {
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return false
	}
	if role != models.RoleParent {
		return true
	}
	linked, ok := middleware.GetStudentIDFromContext(ctx)
	return ok && linked == studentID
}
