package division

import (
	"errors"

	divisionerrors "go-employee/internal/division/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return divisionerrors.ErrDivisionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation (nama divisi unik)
		if pgErr.Code == "23505" {
			return divisionerrors.ErrDivisionAlreadyExists
		}
	}

	return err
}
