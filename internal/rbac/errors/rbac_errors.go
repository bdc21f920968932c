package rbacerrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)

	ErrRoleNameTaken = apperror.New(
		apperror.CodeConflict,
		"A role with this name already exists in the company",
		http.StatusConflict,
	)

	ErrPermissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Permission not found",
		http.StatusNotFound,
	)

	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Group not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrRoleInUse = apperror.New(
		apperror.CodeInvalidState,
		"Role is still assigned to users or groups",
		http.StatusUnprocessableEntity,
	)
)
