package core

import (
	"errors"
	"fmt"
	"strings"
)

// Normalize cleans up interpreter output before validation.
func (p *Proposal) Normalize() {
	p.Action = ProposalAction(strings.ToLower(strings.TrimSpace(string(p.Action))))
	p.Name = strings.TrimSpace(p.Name)
	p.NewName = strings.TrimSpace(p.NewName)
	p.SearchTerm = strings.TrimSpace(p.SearchTerm)
	p.Clarification = strings.TrimSpace(p.Clarification)

	if p.Action == ActionUpdate && p.NewName == "" {
		p.NewName = p.Name
	}
	if p.Action == ActionLowStockReport && p.Threshold <= 0 {
		p.Threshold = DefaultLowStockThreshold
	}
	if p.Confidence < 0 {
		p.Confidence = 0
	}
	if p.Confidence > 1 {
		p.Confidence = 1
	}
}

// Validate checks that the proposal carries what its action needs.
// Item values go through the same rules as the store.
func (p *Proposal) Validate() error {
	switch p.Action {
	case ActionAdd:
		return ValidateItem(p.Name, p.Quantity, p.Price)
	case ActionUpdate:
		if p.Name == "" {
			return fmt.Errorf("%w: update must name the item to change", ErrValidation)
		}
		return ValidateItem(p.NewName, p.Quantity, p.Price)
	case ActionRemove:
		if p.Name == "" {
			return fmt.Errorf("%w: remove must name an item", ErrValidation)
		}
	case ActionSearch:
		if p.SearchTerm == "" {
			return fmt.Errorf("%w: search needs a search term", ErrValidation)
		}
	case ActionValueReport, ActionLowStockReport:
	case ActionClarify:
		if p.Clarification == "" {
			return errors.New("clarification request has no question")
		}
	case "":
		return errors.New("proposal must specify an action")
	default:
		return fmt.Errorf("unknown proposal action %q", p.Action)
	}
	return nil
}

// IsWrite reports whether executing the proposal mutates the store.
func (p *Proposal) IsWrite() bool {
	switch p.Action {
	case ActionAdd, ActionUpdate, ActionRemove:
		return true
	}
	return false
}
