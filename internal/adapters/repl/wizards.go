package repl

import (
	"fmt"
	"strconv"

	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

// addWizard prompts for the fields of a new item.
func (s *session) addWizard() error {
	fmt.Fprintln(s.out, "Add item. Leave the name blank to cancel.")
	name, ok := s.ask("  Name: ")
	if !ok || name == "" {
		fmt.Fprintln(s.out, "Add cancelled.")
		return nil
	}
	qty, ok := s.ask("  Quantity: ")
	if !ok {
		return nil
	}
	price, ok := s.ask("  Price: ")
	if !ok {
		return nil
	}

	in, err := app.ParseItemInput(name, qty, price)
	if err != nil {
		return err
	}
	return s.add(in)
}

func (s *session) add(in app.ItemInput) error {
	res, err := s.svc.AddItem(s.ctx, app.AddItemRequest{
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Confirm: func(existing core.Item) bool {
			return s.confirm(fmt.Sprintf("%q already exists (qty %d @ %s). Add %d to its quantity and set the price to %s?",
				existing.Name, existing.Quantity, s.print.Money(existing.Price), in.Quantity, s.print.Money(in.Price)))
		},
	})
	if err != nil {
		return err
	}
	s.print.AddOutcome(res)
	return nil
}

// updateWizard edits an existing item. Blank answers keep the current value.
func (s *session) updateWizard(name string) error {
	current, err := s.svc.GetItem(s.ctx, name)
	if err != nil {
		return err
	}
	it := current.Item

	fmt.Fprintf(s.out, "Editing %s. Press enter to keep a value.\n", it.Name)
	newName, ok := s.ask(fmt.Sprintf("  Name [%s]: ", it.Name))
	if !ok {
		return nil
	}
	qty, ok := s.ask(fmt.Sprintf("  Quantity [%d]: ", it.Quantity))
	if !ok {
		return nil
	}
	price, ok := s.ask(fmt.Sprintf("  Price [%s]: ", strconv.FormatFloat(it.Price, 'f', -1, 64)))
	if !ok {
		return nil
	}

	in, err := app.ParseItemInput(
		orDefault(newName, it.Name),
		orDefault(qty, strconv.Itoa(it.Quantity)),
		orDefault(price, strconv.FormatFloat(it.Price, 'f', -1, 64)),
	)
	if err != nil {
		return err
	}

	res, err := s.svc.UpdateItem(s.ctx, app.UpdateItemRequest{OldName: it.Name, NewName: in.Name, Quantity: in.Quantity, Price: in.Price})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Updated %s: qty %d @ %s.\n", res.Item.Name, res.Item.Quantity, s.print.Money(res.Item.Price))
	return nil
}

func (s *session) remove(name string) error {
	current, err := s.svc.GetItem(s.ctx, name)
	if err != nil {
		return err
	}
	if !s.confirm(fmt.Sprintf("Delete %q?", current.Item.Name)) {
		fmt.Fprintln(s.out, "Delete cancelled.")
		return nil
	}
	res, err := s.svc.RemoveItem(s.ctx, current.Item.Name)
	if err != nil {
		return err
	}
	if res.Removed {
		fmt.Fprintf(s.out, "Deleted %s.\n", res.Name)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
