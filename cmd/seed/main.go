// seed writes a small sample inventory to the configured backend. Existing
// items with the same names are merged.
//
// Usage: go run ./cmd/seed [target]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"inventory-manager/internal/app"
	"inventory-manager/internal/bootstrap"
	"inventory-manager/internal/config"
	"inventory-manager/internal/core"
	"inventory-manager/internal/persistence"
)

var sample = []core.Item{
	{Name: "Widget", Quantity: 25, Price: 2.50},
	{Name: "Gadget", Quantity: 8, Price: 12.99},
	{Name: "Hex Bolt M8", Quantity: 200, Price: 0.12},
	{Name: "Sprocket", Quantity: 3, Price: 7.75},
	{Name: "Gear Assembly", Quantity: 0, Price: 45.00},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("INVENTORY_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	target := ""
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	ctx := context.Background()
	rt, err := bootstrap.Build(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer rt.Close()

	if _, err := rt.Service.Load(ctx, target); err != nil && !errors.Is(err, persistence.ErrSnapshotNotFound) {
		log.Fatalf("load: %v", err)
	}

	for _, it := range sample {
		res, err := rt.Service.AddItem(ctx, app.AddItemRequest{Name: it.Name, Quantity: it.Quantity, Price: it.Price, Confirm: core.AlwaysMerge})
		if err != nil {
			log.Fatalf("add %s: %v", it.Name, err)
		}
		fmt.Printf("%-8s %s\n", res.Outcome, res.Item.Name)
	}

	res, err := rt.Service.Save(ctx, target)
	if err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("Saved %d item(s) to %s.\n", res.ItemCount, res.Target)
}
