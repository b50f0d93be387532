package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("forbidden")
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

// ForeignKeyError reports whether err is a foreign key violation. An empty constraint matches any constraint.
func ForeignKeyError(err error, constraint string) bool {
	return pqErrorIs(err, pqForeignKeyViolation, constraint)
}

// UniqueViolation reports whether err is a unique constraint violation. An empty constraint matches any constraint.
func UniqueViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqUniqueViolation, constraint)
}

func CheckViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqCheckViolation, constraint)
}

func pqErrorIs(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && (constraint == "" || pqErr.Constraint == constraint)
	}

	return false
}
