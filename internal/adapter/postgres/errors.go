package postgres

import (
	"errors"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/lib/pq"
)

const (
	pqNotNullViolation    = "23502"
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqNumericOutOfRange   = "22003"
)

// mapError turns constraint violations into domain errors; uniqueMsg names the
// conflicting field for the caller.
func mapError(err error, uniqueMsg string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqNotNullViolation:
		return domain.NewError(domain.ErrValidation, "required field is missing")
	case pqForeignKeyViolation:
		return domain.NewError(domain.ErrValidation, "referenced record does not exist")
	case pqUniqueViolation:
		return domain.NewError(domain.ErrConflict, "%s", uniqueMsg)
	case pqNumericOutOfRange:
		return domain.NewError(domain.ErrValidation, "numeric value out of range")
	case pqCheckViolation:
		return domain.NewError(domain.ErrValidation, "value violates constraint %s", pqErr.Constraint)
	default:
		return err
	}
}
