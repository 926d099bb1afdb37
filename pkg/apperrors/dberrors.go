package apperrors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes we classify.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

var pgClasses = map[string]struct {
	code     ErrorCode
	message  string
	httpCode int
}{
	pgUniqueViolation:     {CodeAlreadyExists, "Resource already exists", http.StatusConflict},
	pgForeignKeyViolation: {CodeValidationFailed, "Referenced resource does not exist", http.StatusBadRequest},
	pgCheckViolation:      {CodeValidationFailed, "Value violates a constraint", http.StatusBadRequest},
	pgNotNullViolation:    {CodeValidationFailed, "Required value is missing", http.StatusBadRequest},
}

// IsUniqueViolation reports whether err is a uniqueness failure from either
// the Postgres driver or gorm's translated error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// FromDB classifies a database error for domain. Unknown errors become 500.
// An error that already is an AppError is returned unchanged.
func FromDB(err error, domain string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(err, CodeNotFound, domain, "Resource not found", http.StatusNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(err, CodeAlreadyExists, domain, "Resource already exists", http.StatusConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(err, CodeValidationFailed, domain, "Referenced resource does not exist", http.StatusBadRequest)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return Wrap(err, CodeValidationFailed, domain, "Value violates a constraint", http.StatusBadRequest)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if cls, ok := pgClasses[pgErr.Code]; ok {
			return Wrap(err, cls.code, domain, cls.message, cls.httpCode)
		}
	}

	return Wrap(err, CodeDatabaseError, domain, "Internal server error", http.StatusInternalServerError)
}
