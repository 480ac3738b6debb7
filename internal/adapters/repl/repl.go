package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/ai"
	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

var errExit = errors.New("exit")

// session is the state of one interactive run.
type session struct {
	ctx    context.Context
	svc    app.ApplicationService
	reader *bufio.Reader
	out    io.Writer
	print  *display.Printer

	sortKey core.SortKey
	desc    bool
}

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes other input through the command interpreter when one is configured.
// Run returns when the user exits or reader is exhausted.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer, currency string) {
	s := &session{
		ctx:     ctx,
		svc:     svc,
		reader:  reader,
		out:     out,
		print:   display.New(out, currency),
		sortKey: core.SortByName,
	}

	fmt.Fprintln(out, display.AboutText)
	if status, err := svc.Status(ctx); err == nil {
		target := status.CurrentTarget
		if target == "" {
			target = status.DefaultTarget
		}
		fmt.Fprintf(out, "Items: %d  |  File: %s\n", status.ItemCount, target)
	}
	fmt.Fprintln(out, "Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		fmt.Fprint(out, "\n> ")
		input, err := s.readLine()
		if err != nil {
			fmt.Fprintln(out, "\nGoodbye!")
			return
		}
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher, no interpreter invoked.
		if strings.HasPrefix(input, "/") {
			if err := s.dispatchSlash(input); err != nil {
				if errors.Is(err, errExit) {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		if err := s.interpret(input); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (s *session) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return strings.TrimSpace(line), err
	}
	return strings.TrimSpace(line), nil
}

// ask prints label and returns the trimmed answer. ok is false once input is exhausted.
func (s *session) ask(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	answer, err := s.readLine()
	return answer, err == nil
}

// confirm asks a y/n question. Anything other than y/yes is no.
func (s *session) confirm(question string) bool {
	answer, ok := s.ask(question + " (y/n): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (s *session) dispatchSlash(input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]
	rest := strings.Join(args, " ")

	switch cmd {
	case "list", "ls":
		return s.list(rest)

	case "search", "find":
		if rest == "" {
			// An empty search resets the view to the full table.
			return s.list("")
		}
		return s.list(rest)

	case "sort":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /sort <name|qty|price|value> [desc]")
			return nil
		}
		key, ok := core.ParseSortKey(args[0])
		if !ok {
			fmt.Fprintf(s.out, "Unknown sort column: %s\n", args[0])
			return nil
		}
		s.sortKey = key
		s.desc = len(args) > 1 && strings.EqualFold(args[1], "desc")
		return s.list("")

	case "add":
		if len(args) == 0 {
			return s.addWizard()
		}
		if len(args) < 3 {
			fmt.Fprintln(s.out, "Usage: /add <name> <qty> <price>   (or /add alone for a guided form)")
			return nil
		}
		in, err := app.ParseItemInput(strings.Join(args[:len(args)-2], " "), args[len(args)-2], args[len(args)-1])
		if err != nil {
			return err
		}
		return s.add(in)

	case "update", "edit":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: /update <name>")
			return nil
		}
		return s.updateWizard(rest)

	case "delete", "remove", "rm":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: /delete <name>")
			return nil
		}
		return s.remove(rest)

	case "show", "get":
		if rest == "" {
			fmt.Fprintln(s.out, "Usage: /show <name>")
			return nil
		}
		res, err := s.svc.GetItem(s.ctx, rest)
		if err != nil {
			return err
		}
		s.print.Item(res.Item)

	case "value":
		res, err := s.svc.ValueReport(s.ctx)
		if err != nil {
			return err
		}
		s.print.ValueReport(res)

	case "low", "lowstock":
		threshold := -1
		if rest != "" {
			t, ok := core.ParseThreshold(rest)
			if !ok {
				fmt.Fprintf(s.out, "Invalid threshold %q, using %d.\n", rest, t)
			}
			threshold = t
		}
		res, err := s.svc.LowStockReport(s.ctx, threshold)
		if err != nil {
			return err
		}
		s.print.LowStock(res)

	case "save":
		res, err := s.svc.Save(s.ctx, rest)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %d item(s) to %s.\n", res.ItemCount, res.Target)

	case "load", "open":
		status, err := s.svc.Status(s.ctx)
		if err != nil {
			return err
		}
		if status.Dirty && !s.confirm("You have unsaved changes. Load anyway?") {
			fmt.Fprintln(s.out, "Load cancelled.")
			return nil
		}
		res, err := s.svc.Load(s.ctx, rest)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Loaded %d item(s) from %s.\n", res.ItemCount, res.Target)

	case "status":
		res, err := s.svc.Status(s.ctx)
		if err != nil {
			return err
		}
		s.print.Status(res)

	case "about":
		fmt.Fprintln(s.out, display.AboutText)

	case "help", "h":
		printHelp(s.out)

	case "exit", "quit", "e", "q":
		return s.exit()

	default:
		fmt.Fprintf(s.out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func (s *session) list(search string) error {
	res, err := s.svc.ListItems(s.ctx, app.ListItemsRequest{Search: search, Sort: s.sortKey, Descending: s.desc})
	if err != nil {
		return err
	}
	s.print.Items(res)
	return nil
}

// exit offers to save unsaved changes. Cancelling keeps the session open.
func (s *session) exit() error {
	status, err := s.svc.Status(s.ctx)
	if err != nil || !status.Dirty {
		return errExit
	}

	answer, ok := s.ask("Save changes before exiting? (y/n/cancel): ")
	if !ok {
		return errExit
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		res, err := s.svc.Save(s.ctx, "")
		if err != nil {
			fmt.Fprintf(s.out, "Save FAILED: %v\n", err)
			return nil
		}
		fmt.Fprintf(s.out, "Saved %d item(s) to %s.\n", res.ItemCount, res.Target)
		return errExit
	case "n", "no":
		return errExit
	default:
		fmt.Fprintln(s.out, "Exit cancelled.")
		return nil
	}
}

// interpret routes free text through the command interpreter. Read-only
// proposals run immediately; writes need approval.
func (s *session) interpret(input string) error {
	fmt.Fprintln(s.out, "[AI] Processing...")
	accumulatedInput := input

	for rounds := 1; ; rounds++ {
		if rounds > 3 {
			fmt.Fprintln(s.out, "Could not produce a proposal. Try a slash command instead, type /help.")
			return nil
		}

		result, err := s.svc.InterpretCommand(s.ctx, accumulatedInput)
		if errors.Is(err, ai.ErrAgentUnavailable) {
			fmt.Fprintln(s.out, "Natural-language commands need OPENAI_API_KEY. Type /help for commands.")
			return nil
		}
		if err != nil {
			return err
		}

		if result.IsClarification {
			fmt.Fprintf(s.out, "\n[AI]: %s\n", result.ClarificationMessage)
			followUp, ok := s.ask("> ")
			if !ok {
				return errExit
			}

			// Slash command during clarification: cancel the interpreter flow and run it.
			if strings.HasPrefix(followUp, "/") {
				fmt.Fprintln(s.out, "(AI session cancelled)")
				return s.dispatchSlash(followUp)
			}
			if followUp == "" || strings.EqualFold(followUp, "cancel") {
				fmt.Fprintln(s.out, "Cancelled.")
				return nil
			}
			accumulatedInput = fmt.Sprintf("Original request: %s\nClarification requested: %s\nUser response: %s",
				accumulatedInput, result.ClarificationMessage, followUp)
			fmt.Fprintln(s.out, "[AI] Thinking...")
			continue
		}

		proposal := result.Proposal
		if !proposal.IsWrite() {
			return s.executeProposal(*proposal)
		}

		s.print.Proposal(proposal)
		if proposal.Confidence < 0.6 {
			fmt.Fprintln(s.out, "\nWARNING: Low confidence proposal.")
		}
		if !s.confirm("\nApprove this change?") {
			fmt.Fprintln(s.out, "Change cancelled.")
			return nil
		}
		return s.executeProposal(*proposal)
	}
}

func (s *session) executeProposal(p core.Proposal) error {
	res, err := s.svc.ExecuteProposal(s.ctx, p)
	if err != nil {
		return err
	}
	printProposalResult(s.print, s.out, res)
	return nil
}
