package balanceerrors

import (
	"net/http"

	"leaveflow/internal/shared/apperror"
)

var (
	ErrUnknownCategory = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave category",
		http.StatusBadRequest,
	)
	ErrNoAllotment = apperror.New(
		apperror.CodeInvalidInput,
		"this leave category has no dedicated allotment",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive integer",
		http.StatusBadRequest,
	)
)
