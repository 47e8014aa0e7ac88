package employee

import (
	"errors"

	employeeerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	return err
}
