package custom_error

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

type CustomError interface {
	Error() string
}

// UniqueViolationError is a conflict reported by the store, tagged with the
// name of the unique constraint that fired.
type UniqueViolationError struct {
	Constraint string
	message    string
	code       string
}

// ForeignKeyViolationError is reported when a referenced row is missing or
// when a restricted row is still referenced.
type ForeignKeyViolationError struct {
	Constraint string
	message    string
	code       string
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (constraint: %s, code: %s)", f.message, f.Constraint, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (constraint: %s, code: %s)", e.message, e.Constraint, e.code)
}

// WrapDBError converts a driver error into a typed conflict. Errors that are
// not constraint violations are returned unchanged.
func WrapDBError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case uniqueViolationCode:
		return &UniqueViolationError{
			Constraint: pqErr.Constraint,
			message:    pqErr.Message,
			code:       string(pqErr.Code),
		}
	case foreignKeyViolationCode:
		return &ForeignKeyViolationError{
			Constraint: pqErr.Constraint,
			message:    pqErr.Message,
			code:       string(pqErr.Code),
		}
	default:
		return err
	}
}

// ConstraintMap translates store conflicts into domain errors. A conflict on a
// constraint that is not listed is returned as is.
type ConstraintMap map[string]error

func (m ConstraintMap) Translate(err error) error {
	wrapped := WrapDBError(err)

	var unique *UniqueViolationError
	if errors.As(wrapped, &unique) {
		if domainErr, ok := m[unique.Constraint]; ok {
			return domainErr
		}
		return wrapped
	}

	var fk *ForeignKeyViolationError
	if errors.As(wrapped, &fk) {
		if domainErr, ok := m[fk.Constraint]; ok {
			return domainErr
		}
		return wrapped
	}

	return err
}
