package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFix signals a location fix with NaN, infinite or out-of-range coordinates.
	ErrInvalidFix = errors.New("invalid location fix")
	// ErrSessionNotFound signals a missing exploration session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidCatalog signals a catalog that cannot be built.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrDuplicateItem signals two catalog items sharing an ID.
	ErrDuplicateItem = errors.New("duplicate catalog item")
	// ErrItemNotFound signals an unknown catalog item ID.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrInvalidPlayer signals a malformed player identifier.
	ErrInvalidPlayer = errors.New("invalid player id")
)

// DuplicateItemError wraps ErrDuplicateItem with the offending item ID.
type DuplicateItemError struct {
	ID int
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("%s: id %d", ErrDuplicateItem.Error(), e.ID)
}

func (e *DuplicateItemError) Unwrap() error { return ErrDuplicateItem }

// NewDuplicateItem creates a duplicate item error.
func NewDuplicateItem(id int) error {
	return &DuplicateItemError{ID: id}
}
