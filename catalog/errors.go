package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCategory is returned for a category outside Categories().
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownDialect is returned when no dialect is registered under a name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// IdentityCollisionError reports two objects of one catalog sharing an identity key.
// It means the key does not capture the catalog's real identity and the
// category cannot be compared without hiding drift.
type IdentityCollisionError struct {
	Category Category
	Side     Side
	Key      []string
}

func (e *IdentityCollisionError) Error() string {
	return fmt.Sprintf("identity collision in %s catalog for %s (%s)",
		e.Side, e.Category, strings.Join(e.Key, ", "))
}
