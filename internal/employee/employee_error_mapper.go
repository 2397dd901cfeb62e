package employee

import (
	"errors"

	employeeerrors "go-employee/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation; satu-satunya FK di tabel ini
		// adalah division_id
		if pgErr.Code == "23503" {
			return employeeerrors.ErrDivisionNotFound
		}
	}

	return err
}
