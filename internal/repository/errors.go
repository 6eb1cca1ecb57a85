package repository

import (
	"errors"

	"go-supermarket-inventory/internal/apperror"

	"gorm.io/gorm"
)

// translate turns GORM sentinel errors into the application's error kinds.
// It requires the connection to be opened with TranslateError enabled.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperror.Error{Kind: apperror.KindDuplicate, Message: entity + " already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperror.Error{Kind: apperror.KindReference, Message: entity + " references a missing record", Err: err}
	}
	return err
}

func activeScope(includeInactive bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeInactive {
			return db
		}
		return db.Where("is_active = ?", true)
	}
}
