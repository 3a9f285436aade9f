package leaveerrors

import (
	"net/http"

	"leaveflow/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidApproverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approver id",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"duration must be at least one day",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be PENDING, APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"approver not found",
		http.StatusNotFound,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"leave has already been decided",
		http.StatusConflict,
	)
	ErrNotLeaveOwner = apperror.New(
		apperror.CodeForbidden,
		"leave belongs to another user",
		http.StatusForbidden,
	)
	ErrOnlyPendingDeletable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leaves can be cancelled",
		http.StatusConflict,
	)
)
