package vehicleerrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrVehicleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vehicle not found",
		http.StatusNotFound,
	)

	ErrPlateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Vehicle with the same plate number already exists",
		http.StatusConflict,
	)

	ErrVehicleNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"Vehicle is not available for assignment",
		http.StatusUnprocessableEntity,
	)

	ErrVehicleAlreadyAssigned = apperror.New(
		apperror.CodeInvalidState,
		"Vehicle is already assigned to an active delivery",
		http.StatusUnprocessableEntity,
	)
)
