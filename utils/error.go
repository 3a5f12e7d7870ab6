package utils

import (
	"errors"
	"fmt"
)

// Error kinds for the ledger and the adjacent CRUD. Callers classify with
// errors.Is; the HTTP layer maps kinds to status codes.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("duplicate record")
)

func NotFoundError(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

func InsufficientStockError(entity string, id any, available int, requested int) error {
	return fmt.Errorf("%s %v has %d, requested %d: %w", entity, id, available, requested, ErrInsufficientStock)
}

func ValidationError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

func ConflictError(entity string, column string, value any) error {
	return fmt.Errorf("%s with %s %v already exists: %w", entity, column, value, ErrConflict)
}

// IsDomainError reports whether err already carries one of the ledger kinds.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict)
}

// WrapStorage annotates a storage failure with the failing operation.
// Domain errors pass through unchanged so the original class survives
// repository boundaries.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
