package core_test

import (
	"errors"
	"math"
	"testing"

	"inventory-manager/internal/core"
)

func TestStore_AddThenGet(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		quantity int
		price    float64
	}{
		{name: "simple", item: "Widget", quantity: 5, price: 2.50},
		{name: "zero quantity", item: "Gadget", quantity: 0, price: 1},
		{name: "zero price", item: "Freebie", quantity: 3, price: 0},
		{name: "name with inner spaces", item: "Hex Bolt M8", quantity: 200, price: 0.12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewStore()
			outcome, err := s.Add(tt.item, tt.quantity, tt.price, nil)
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if outcome != core.OutcomeAdded {
				t.Errorf("expected OutcomeAdded, got %s", outcome)
			}

			got, ok := s.Get(tt.item)
			if !ok {
				t.Fatalf("Get(%q) found nothing", tt.item)
			}
			want := core.Item{Name: tt.item, Quantity: tt.quantity, Price: tt.price}
			if got != want {
				t.Errorf("Get: want %+v, got %+v", want, got)
			}
		})
	}
}

func TestStore_AddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		quantity int
		price    float64
	}{
		{name: "empty name", item: "", quantity: 1, price: 1},
		{name: "blank name", item: "   ", quantity: 1, price: 1},
		{name: "negative quantity", item: "Widget", quantity: -1, price: 1},
		{name: "negative price", item: "Widget", quantity: 1, price: -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewStore()
			if _, err := s.Add("Existing", 1, 1, nil); err != nil {
				t.Fatalf("setup: %v", err)
			}

			_, err := s.Add(tt.item, tt.quantity, tt.price, core.AlwaysMerge)
			if !errors.Is(err, core.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if s.Len() != 1 {
				t.Errorf("store changed on failed add: len %d", s.Len())
			}
		})
	}
}

func TestStore_AddMerge(t *testing.T) {
	s := core.NewStore()
	if _, err := s.Add("Widget", 5, 2.50, nil); err != nil {
		t.Fatalf("first add: %v", err)
	}

	var offered core.Item
	outcome, err := s.Add("Widget", 3, 3.00, func(existing core.Item) bool {
		offered = existing
		return true
	})
	if err != nil {
		t.Fatalf("merge add: %v", err)
	}
	if outcome != core.OutcomeMerged {
		t.Errorf("expected OutcomeMerged, got %s", outcome)
	}
	if offered.Quantity != 5 || offered.Price != 2.50 {
		t.Errorf("confirmer saw %+v, want the existing item", offered)
	}

	got, _ := s.Get("Widget")
	if got.Quantity != 8 {
		t.Errorf("merged quantity: want 8, got %d", got.Quantity)
	}
	if got.Price != 3.00 {
		t.Errorf("merged price: want 3.00 (last write wins), got %v", got.Price)
	}
}

func TestStore_AddMergeDeclined(t *testing.T) {
	for name, confirm := range map[string]core.MergeConfirmer{
		"nil confirmer": nil,
		"declined":      func(core.Item) bool { return false },
	} {
		t.Run(name, func(t *testing.T) {
			s := core.NewStore()
			s.Add("Widget", 5, 2.50, nil)

			outcome, err := s.Add("Widget", 3, 3.00, confirm)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome != core.OutcomeUnchanged {
				t.Errorf("expected OutcomeUnchanged, got %s", outcome)
			}
			got, _ := s.Get("Widget")
			if got.Quantity != 5 || got.Price != 2.50 {
				t.Errorf("item changed after declined merge: %+v", got)
			}
		})
	}
}

func TestStore_NamesAreCaseSensitive(t *testing.T) {
	s := core.NewStore()
	s.Add("widget", 1, 1, nil)
	outcome, err := s.Add("Widget", 2, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != core.OutcomeAdded {
		t.Errorf("expected a second item, got %s", outcome)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 items, got %d", s.Len())
	}
}

func TestStore_Update(t *testing.T) {
	t.Run("in place", func(t *testing.T) {
		s := core.NewStore()
		s.Add("Widget", 5, 2.50, nil)

		if err := s.Update("Widget", "Widget", 7, 4.25); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, _ := s.Get("Widget")
		if got.Quantity != 7 || got.Price != 4.25 {
			t.Errorf("want qty 7 price 4.25, got %+v", got)
		}
	})

	t.Run("rename", func(t *testing.T) {
		s := core.NewStore()
		s.Add("Widget", 5, 2.50, nil)

		if err := s.Update("Widget", "Sprocket", 9, 1.10); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if _, ok := s.Get("Widget"); ok {
			t.Error("old name still present after rename")
		}
		got, ok := s.Get("Sprocket")
		if !ok {
			t.Fatal("new name missing after rename")
		}
		if got.Name != "Sprocket" || got.Quantity != 9 || got.Price != 1.10 {
			t.Errorf("unexpected renamed item %+v", got)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 item, got %d", s.Len())
		}
	})

	t.Run("rename onto existing item conflicts", func(t *testing.T) {
		s := core.NewStore()
		s.Add("Widget", 5, 2.50, nil)
		s.Add("Sprocket", 1, 9.99, nil)

		err := s.Update("Widget", "Sprocket", 9, 1.10)
		if !errors.Is(err, core.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		w, _ := s.Get("Widget")
		sp, _ := s.Get("Sprocket")
		if w.Quantity != 5 || sp.Quantity != 1 {
			t.Errorf("store changed on conflict: %+v %+v", w, sp)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		s := core.NewStore()
		err := s.Update("Ghost", "Ghost", 1, 1)
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if s.Len() != 0 {
			t.Error("update of missing item created a record")
		}
	})

	t.Run("negative values rejected before mutation", func(t *testing.T) {
		s := core.NewStore()
		s.Add("Widget", 5, 2.50, nil)

		for _, args := range []struct {
			qty   int
			price float64
		}{{-1, 1}, {1, -1}} {
			err := s.Update("Widget", "Renamed", args.qty, args.price)
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("expected ErrValidation for %+v, got %v", args, err)
			}
		}
		if _, ok := s.Get("Widget"); !ok {
			t.Error("original item lost after failed update")
		}
	})
}

func TestStore_Remove(t *testing.T) {
	s := core.NewStore()
	s.Add("Widget", 5, 2.50, nil)
	s.Add("Sprocket", 1, 1, nil)

	if s.Remove("Ghost") {
		t.Error("Remove of absent name returned true")
	}
	if s.Len() != 2 {
		t.Errorf("absent remove changed size to %d", s.Len())
	}

	if !s.Remove("Widget") {
		t.Error("Remove of present name returned false")
	}
	if s.Len() != 1 {
		t.Errorf("expected size 1 after remove, got %d", s.Len())
	}

	if s.Remove("Widget") {
		t.Error("second Remove returned true")
	}
}

func TestStore_ListIsASnapshot(t *testing.T) {
	s := core.NewStore()
	s.Add("b", 1, 1, nil)
	s.Add("a", 2, 2, nil)

	items := s.List()
	if len(items) != 2 || items[0].Name != "a" || items[1].Name != "b" {
		t.Fatalf("unexpected list %+v", items)
	}

	items[0].Quantity = -100
	got, _ := s.Get("a")
	if got.Quantity != 2 {
		t.Errorf("mutating the listed copy reached the store: %+v", got)
	}
}

func TestStore_ClearAndReplace(t *testing.T) {
	s := core.NewStore()
	s.Add("Widget", 5, 2.50, nil)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear left %d items", s.Len())
	}

	err := s.Replace([]core.Item{
		{Name: "A", Quantity: 1, Price: 1},
		{Name: "B", Quantity: 2, Price: 2},
		{Name: "A", Quantity: 9, Price: 9},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 items after duplicate replace, got %d", s.Len())
	}
	a, _ := s.Get("A")
	if a.Quantity != 9 || a.Price != 9 {
		t.Errorf("last record should win, got %+v", a)
	}

	err = s.Replace([]core.Item{{Name: "C", Quantity: 1, Price: 1}, {Name: "D", Quantity: -1, Price: 1}})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, ok := s.Get("C"); ok {
		t.Error("invalid replace partially applied")
	}
	if s.Len() != 2 {
		t.Errorf("invalid replace changed store size to %d", s.Len())
	}
}

func TestStore_AddMergeQuantityOverflow(t *testing.T) {
	s := core.NewStore()
	if _, err := s.Add("Widget", math.MaxInt, 0, nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	outcome, err := s.Add("Widget", 1, 0, core.AlwaysMerge)
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if outcome != core.OutcomeUnchanged {
		t.Errorf("expected OutcomeUnchanged, got %s", outcome)
	}
	got, _ := s.Get("Widget")
	if got.Quantity != math.MaxInt {
		t.Errorf("quantity changed after rejected merge: %d", got.Quantity)
	}
}

func TestStore_RejectsOutOfRangeValue(t *testing.T) {
	t.Run("single line value", func(t *testing.T) {
		s := core.NewStore()
		_, err := s.Add("Gold", 10, 1e308, nil)
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("rejected add reached the store")
		}
	})

	t.Run("total across items", func(t *testing.T) {
		s := core.NewStore()
		if _, err := s.Add("Gold", 1, math.MaxFloat64, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := s.Add("Silver", 1, math.MaxFloat64, nil); !errors.Is(err, core.ErrValidation) {
			t.Fatalf("add: expected ErrValidation, got %v", err)
		}
		if _, err := s.Add("Tin", 1, 1, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := s.Update("Tin", "Tin", 1, math.MaxFloat64); !errors.Is(err, core.ErrValidation) {
			t.Fatalf("update: expected ErrValidation, got %v", err)
		}
		tin, _ := s.Get("Tin")
		if tin.Price != 1 {
			t.Errorf("rejected update changed Tin: %+v", tin)
		}
		if err := s.Update("Gold", "Gold", 1, 5); err != nil {
			t.Errorf("updating the large item itself should pass: %v", err)
		}
	})

	t.Run("replace", func(t *testing.T) {
		s := core.NewStore()
		s.Add("Widget", 5, 2.50, nil)
		err := s.Replace([]core.Item{
			{Name: "A", Quantity: 1, Price: math.MaxFloat64},
			{Name: "B", Quantity: 1, Price: math.MaxFloat64},
		})
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if _, ok := s.Get("Widget"); !ok {
			t.Error("rejected replace changed the store")
		}
	})
}
