package divisionerrors

import (
	"go-employee/internal/shared/apperror"
	"net/http"
)

var (
	ErrDivisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Divisi tidak ditemukan",
		http.StatusNotFound,
	)
	ErrDivisionAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Divisi dengan nama yang sama sudah ada",
		http.StatusConflict,
	)
)
