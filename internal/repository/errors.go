package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var (
	pgDetailPattern     = regexp.MustCompile(`Key \(([^)]+)\)=\((.*)\) already exists`)
	sqliteUniquePattern = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)
)

// DuplicateKey reports whether err is a unique-constraint violation and,
// where the driver exposes them, the offending column and value.
func DuplicateKey(err error) (field, value string, ok bool) {
	if err == nil {
		return "", "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", "", false
		}
		if m := pgDetailPattern.FindStringSubmatch(pgErr.Detail); m != nil {
			return m[1], m[2], true
		}
		return pgErr.ColumnName, "", true
	}

	if m := sqliteUniquePattern.FindStringSubmatch(err.Error()); m != nil {
		return m[1], "", true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		return "", "", true
	}
	return "", "", false
}

// IsNotFound is true for gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
