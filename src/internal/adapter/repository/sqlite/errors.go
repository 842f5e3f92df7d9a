package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

// constraintError maps go-sqlite3 constraint violations onto the domain
// error kinds, mirroring the postgres mapping so both stores surface
// identical failures.
func constraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return domain.ErrDuplicateKey
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
		return domain.ErrReferentialBlock
	}

	return err
}
