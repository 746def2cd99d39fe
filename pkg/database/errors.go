package database

import (
	"database/sql"
	"errors"

	"vidtube/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows)
}

// MapError translates store errors into application errors. Missing rows
// become NotFound with notFoundMsg and unique violations become Conflict.
func MapError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return apperror.NotFound("%s", notFoundMsg)
	case IsUniqueViolation(err):
		return apperror.Wrap(apperror.KindConflict, "resource already exists", err)
	default:
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Internal("database operation failed", err)
	}
}
