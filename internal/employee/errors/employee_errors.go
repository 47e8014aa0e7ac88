package employeeerrors

import (
	"net/http"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee has no contract history",
		http.StatusNotFound,
	)
	ErrOutsideDivision = apperror.New(
		apperror.CodeForbidden,
		"Employee belongs to a different division",
		http.StatusForbidden,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
