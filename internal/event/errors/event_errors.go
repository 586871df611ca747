package eventerrors

import (
	"net/http"

	"teampulse/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid event id",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"event not found",
		http.StatusNotFound,
	)
)
