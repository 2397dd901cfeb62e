package employeeerrors

import (
	"go-employee/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Karyawan tidak ditemukan",
		http.StatusNotFound,
	)
	ErrDivisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Divisi tidak ditemukan",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"ID karyawan tidak valid",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Field wajib belum diisi",
		http.StatusBadRequest,
	)
)
