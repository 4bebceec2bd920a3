package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/xy-planning-network/meadowlark"
	"gorm.io/gorm"
)

var ErrMigration = errors.New("migration failed")

var (
	// errSQLSyntax is a very loose aggregation of error codes
	// originating from PostgreSQL itself
	// that are some sort of syntax issue in the statement or datatype mismatch.
	//
	// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
	errSQLSyntax = regexp.MustCompile(`SQLSTATE (42601|22P02)`)

	errConstraintViolation = regexp.MustCompile(`SQLSTATE (23502|23503)`)
	errUniqViolation       = regexp.MustCompile(`SQLSTATE (23505)`)
)

// translate maps errors from gorm and PostgreSQL onto the root package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", meadowlark.ErrNotExist, err)

	case errUniqViolation.MatchString(err.Error()),
		errConstraintViolation.MatchString(err.Error()),
		errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", meadowlark.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: %s", meadowlark.ErrUnexpected, err)
	}
}
