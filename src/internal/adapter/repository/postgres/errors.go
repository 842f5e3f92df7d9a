package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/api-sage/bookkeeper/src/internal/domain"
)

// constraintError maps lib/pq constraint violations onto the domain error
// kinds so callers never see driver-specific codes. Unique violations become
// ErrDuplicateKey; foreign key and restrict violations become
// ErrReferentialBlock.
func constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case "23505":
		return domain.ErrDuplicateKey
	case "23503", "23001":
		return domain.ErrReferentialBlock
	}

	return err
}
