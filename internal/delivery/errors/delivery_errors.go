package deliveryerrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrDeliveryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Delivery not found",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Status transition is not allowed",
		http.StatusUnprocessableEntity,
	)

	ErrDeliveryTerminal = apperror.New(
		apperror.CodeInvalidState,
		"Delivery is in a terminal state",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"Coordinates are out of range",
		http.StatusBadRequest,
	)

	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer not found",
		http.StatusNotFound,
	)

	ErrDriverNotFound = apperror.New(
		apperror.CodeNotFound,
		"Driver not found",
		http.StatusNotFound,
	)

	ErrDeliveryNotDelivered = apperror.New(
		apperror.CodeInvalidState,
		"Delivery has not reached delivered",
		http.StatusUnprocessableEntity,
	)

	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Delivery report not found",
		http.StatusNotFound,
	)

	ErrNotADriver = apperror.New(
		apperror.CodeInvalidInput,
		"Assigned employee is not a driver",
		http.StatusBadRequest,
	)
)
