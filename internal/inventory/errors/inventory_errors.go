package inventoryerrors

import (
	"net/http"

	"go-logistics/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Inventory item not found",
		http.StatusNotFound,
	)

	ErrSKUAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Item with the same SKU already exists",
		http.StatusConflict,
	)

	ErrInsufficientStock = apperror.New(
		apperror.CodeInvalidState,
		"Adjustment would drive stock below zero",
		http.StatusUnprocessableEntity,
	)

	ErrZeroAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"Stock adjustment quantity must not be zero",
		http.StatusBadRequest,
	)
)
