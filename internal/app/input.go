package app

import (
	"fmt"
	"strconv"
	"strings"

	"inventory-manager/internal/core"
)

// ItemInput is raw form or command input converted to typed item values.
type ItemInput struct {
	Name     string
	Quantity int
	Price    float64
}

// ParseItemInput converts user-entered text to item values. Every failure
// wraps core.ErrValidation, so callers can report it without touching the store.
func ParseItemInput(name, quantity, price string) (ItemInput, error) {
	in := ItemInput{Name: strings.TrimSpace(name)}

	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return ItemInput{}, fmt.Errorf("%w: quantity must be a whole number, got %q", core.ErrValidation, strings.TrimSpace(quantity))
	}
	in.Quantity = q

	p, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(price), "$"), 64)
	if err != nil {
		return ItemInput{}, fmt.Errorf("%w: price must be a number, got %q", core.ErrValidation, strings.TrimSpace(price))
	}
	in.Price = p

	if err := core.ValidateItem(in.Name, in.Quantity, in.Price); err != nil {
		return ItemInput{}, err
	}
	return in, nil
}
