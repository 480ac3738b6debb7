package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrValidation is returned when input has the wrong shape or range:
	// empty name, negative quantity or price, non-numeric text.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation needs an item that is not in the store.
	ErrNotFound = errors.New("item not found")

	// ErrConflict is returned when a rename would overwrite a different item.
	ErrConflict = errors.New("item already exists")
)

// ValidateItem checks the store invariants for a single record.
func ValidateItem(name string, quantity int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative, got %d", ErrValidation, quantity)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price must be a finite number", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative, got %g", ErrValidation, price)
	}
	if math.IsInf(float64(quantity)*price, 0) {
		return fmt.Errorf("%w: value of %d x %g is out of range", ErrValidation, quantity, price)
	}
	return nil
}
