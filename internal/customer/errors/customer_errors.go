package customererrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrCustomerAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Customer with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid customer ID",
		http.StatusBadRequest,
	)
)
