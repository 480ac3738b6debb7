// verify-agent sends one sample request to the command interpreter and prints
// the proposal. It needs OPENAI_API_KEY.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"inventory-manager/internal/ai"
	"inventory-manager/internal/config"
	"inventory-manager/internal/core"
)

func main() {
	_ = godotenv.Load() // Load .env if present

	cfg, err := config.Load(os.Getenv("INVENTORY_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !cfg.AgentEnabled() {
		log.Fatal("OPENAI_API_KEY not set")
	}

	agent := ai.NewAgent(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	ctx := context.Background()

	summary := `- Widget | quantity 25 | price 2.50
- Hex Bolt M8 | quantity 200 | price 0.12
- Sprocket | quantity 3 | price 7.75
`
	request := "We just received 10 more widgets, they cost 2.75 each now."
	if len(os.Args) > 1 {
		request = os.Args[1]
	}

	fmt.Printf("INTERPRETING REQUEST: %s\n", request)
	proposal, err := agent.InterpretCommand(ctx, request, summary)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- PROPOSAL ---\n")
	fmt.Printf("Action:     %s\n", proposal.Action)
	fmt.Printf("Confidence: %.2f\n", proposal.Confidence)
	fmt.Printf("Reasoning:  %s\n", proposal.Reasoning)
	switch {
	case proposal.Action == core.ActionClarify:
		fmt.Printf("Question:   %s\n", proposal.Clarification)
	case proposal.IsWrite():
		fmt.Printf("Item:       %s -> %s (qty %d @ %.2f)\n", proposal.Name, proposal.NewName, proposal.Quantity, proposal.Price)
	}
}
