package recommendationerrors

import (
	"net/http"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"
)

var (
	ErrRecommendationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Recommendation not found",
		http.StatusNotFound,
	)
	ErrPendingExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has a pending recommendation",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Recommendation has already been processed",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"Recommendation is not in a processable state",
		http.StatusConflict,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Decision must be approved, rejected, extended, or resign",
		http.StatusBadRequest,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Recommendation type must be kontrak2, kontrak3, permanent, or terminate",
		http.StatusBadRequest,
	)
	ErrDurationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Duration is required for fixed-term contract recommendations",
		http.StatusBadRequest,
	)
	ErrResignDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Resign date is required for resign decisions",
		http.StatusBadRequest,
	)
	ErrResignOnlyForTerminate = apperror.New(
		apperror.CodeInvalidInput,
		"Resign decision is only valid for terminate recommendations",
		http.StatusBadRequest,
	)
	ErrOutsideDivision = apperror.New(
		apperror.CodeForbidden,
		"Managers can only recommend employees in their own division",
		http.StatusForbidden,
	)
)
