package postgres

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation matches both GORM's translated error and the raw driver error,
// since the connection may be opened without TranslateError.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, pgerrcode.UniqueViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, pgerrcode.NotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return hasSQLState(err, pgerrcode.CheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}

	return false
}
