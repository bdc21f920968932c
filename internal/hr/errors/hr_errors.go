package hrerrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll profile not found",
		http.StatusNotFound,
	)

	ErrProfileAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A payroll profile already exists for this employee",
		http.StatusConflict,
	)

	ErrMultiplePayTypes = apperror.New(
		apperror.CodeInvalidInput,
		"Exactly one payment type must be selected",
		http.StatusBadRequest,
	)

	ErrMissingRate = apperror.New(
		apperror.CodeInvalidInput,
		"The rate for the selected payment type must be positive",
		http.StatusBadRequest,
	)

	ErrInvalidInterval = apperror.New(
		apperror.CodeInvalidInput,
		"Payment interval must be DAILY, WEEKLY, BIWEEKLY or MONTHLY",
		http.StatusBadRequest,
	)

	ErrInvalidBusinessDay = apperror.New(
		apperror.CodeInvalidInput,
		"Payment business day must be between 1 (Monday) and 5 (Friday)",
		http.StatusBadRequest,
	)

	ErrWorkRecordExists = apperror.New(
		apperror.CodeConflict,
		"A work record already exists for this profile and date",
		http.StatusConflict,
	)

	ErrWorkRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Work record not found",
		http.StatusNotFound,
	)

	ErrUnresolvableHours = apperror.New(
		apperror.CodeInvalidInput,
		"Hours must be given directly or derivable from start and end time",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period start must not be after period end",
		http.StatusBadRequest,
	)

	ErrPeriodEndInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Period end must not be in the future",
		http.StatusBadRequest,
	)

	ErrNothingToSettle = apperror.New(
		apperror.CodeInvalidState,
		"Current period amount is zero, nothing to settle",
		http.StatusUnprocessableEntity,
	)
)
