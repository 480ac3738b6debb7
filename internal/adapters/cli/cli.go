// Package cli wires the cobra command tree. Every command resolves its
// dependencies through a Builder so tests can run commands against an
// in-process service.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/adapters/repl"
	"inventory-manager/internal/adapters/tui"
	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
	"inventory-manager/internal/persistence"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	DataFile   string
}

// Env is what a command needs to run.
type Env struct {
	Service  app.ApplicationService
	Currency string
	// Backend is consulted for optional capabilities such as snapshot listing.
	Backend persistence.Backend
	// Close releases resources such as a database pool. May be nil.
	Close func()
}

// Builder constructs the Env for a command invocation.
type Builder func(ctx context.Context, flags GlobalFlags) (*Env, error)

type runner struct {
	build Builder
	flags GlobalFlags
}

// NewRootCommand returns the inventory command tree. Without a subcommand it
// starts the REPL.
func NewRootCommand(build Builder) *cobra.Command {
	r := &runner{build: build}

	root := &cobra.Command{
		Use:           "inventory",
		Short:         display.AboutText,
		Long:          display.AboutText + "\n\nTrack items, quantities and prices; search, report and save to a local file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          r.runREPL,
	}
	root.PersistentFlags().StringVar(&r.flags.ConfigFile, "config", "", "config file (default ./inventory.yaml)")
	root.PersistentFlags().StringVarP(&r.flags.DataFile, "file", "f", "", "inventory file or snapshot name (overrides data_file)")

	root.AddCommand(
		&cobra.Command{Use: "repl", Short: "Start the interactive shell", Args: cobra.NoArgs, RunE: r.runREPL},
		&cobra.Command{Use: "tui", Short: "Start the full-screen table view", Args: cobra.NoArgs, RunE: r.runTUI},
		r.listCommand(),
		r.addCommand(),
		r.updateCommand(),
		r.removeCommand(),
		r.reportCommand(),
		r.askCommand(),
		r.snapshotsCommand(),
		schemaCommand(),
	)
	return root
}

// withEnv builds the Env, loads the data file when it exists and runs fn.
func (r *runner) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := r.build(ctx, r.flags)
	if err != nil {
		return err
	}
	if env.Close != nil {
		defer env.Close()
	}

	if _, err := env.Service.Load(ctx, ""); err != nil && !errors.Is(err, persistence.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	return fn(ctx, env)
}

func save(ctx context.Context, env *Env, out io.Writer) error {
	res, err := env.Service.Save(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %d item(s) to %s.\n", res.ItemCount, res.Target)
	return nil
}

func (r *runner) runREPL(cmd *cobra.Command, _ []string) error {
	return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
		repl.Run(ctx, env.Service, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), env.Currency)
		return nil
	})
}

func (r *runner) runTUI(cmd *cobra.Command, _ []string) error {
	return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
		return tui.Run(ctx, env.Service, env.Currency)
	})
}

func (r *runner) listCommand() *cobra.Command {
	var search, sortBy string
	var desc bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the inventory table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, ok := core.ParseSortKey(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort column %q (use name, qty, price or value)", sortBy)
			}
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				res, err := env.Service.ListItems(ctx, app.ListItemsRequest{Search: search, Sort: key, Descending: desc})
				if err != nil {
					return err
				}
				display.New(cmd.OutOrStdout(), env.Currency).Items(res)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort column: name, qty, price or value")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func (r *runner) addCommand() *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "add <name> <quantity> <price>",
		Short: "Add an item, or merge into an existing one with --merge",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := app.ParseItemInput(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				req := app.AddItemRequest{Name: in.Name, Quantity: in.Quantity, Price: in.Price}
				if merge {
					req.Confirm = core.AlwaysMerge
				}
				res, err := env.Service.AddItem(ctx, req)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.Outcome == core.OutcomeUnchanged {
					fmt.Fprintf(out, "%q already exists (qty %d). Use --merge to add to it.\n", res.Item.Name, res.Item.Quantity)
					return nil
				}
				display.New(out, env.Currency).AddOutcome(res)
				return save(ctx, env, out)
			})
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "add the quantity to an existing item and replace its price")
	// Flags go before the name; everything after it is positional so that
	// "add Widget -5 1" reports a validation error instead of an unknown flag.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (r *runner) updateCommand() *cobra.Command {
	var newName, qty, price string
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Change an item's name, quantity or price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				current, err := env.Service.GetItem(ctx, args[0])
				if err != nil {
					return err
				}
				it := current.Item
				if newName == "" {
					newName = it.Name
				}
				if qty == "" {
					qty = strconv.Itoa(it.Quantity)
				}
				if price == "" {
					price = strconv.FormatFloat(it.Price, 'f', -1, 64)
				}
				in, err := app.ParseItemInput(newName, qty, price)
				if err != nil {
					return err
				}
				res, err := env.Service.UpdateItem(ctx, app.UpdateItemRequest{OldName: it.Name, NewName: in.Name, Quantity: in.Quantity, Price: in.Price})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				display.New(out, env.Currency).Item(res.Item)
				return save(ctx, env, out)
			})
		},
	}
	cmd.Flags().StringVar(&newName, "name", "", "new name")
	cmd.Flags().StringVar(&qty, "qty", "", "new quantity")
	cmd.Flags().StringVar(&price, "price", "", "new unit price")
	return cmd
}

func (r *runner) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				res, err := env.Service.RemoveItem(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !res.Removed {
					fmt.Fprintf(out, "No item named %q.\n", res.Name)
					return nil
				}
				fmt.Fprintf(out, "Deleted %s.\n", res.Name)
				return save(ctx, env, out)
			})
		},
	}
}

func (r *runner) reportCommand() *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Inventory reports",
	}

	value := &cobra.Command{
		Use:   "value",
		Short: "Value of every item and the grand total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				res, err := env.Service.ValueReport(ctx)
				if err != nil {
					return err
				}
				display.New(cmd.OutOrStdout(), env.Currency).ValueReport(res)
				return nil
			})
		},
	}

	var threshold string
	low := &cobra.Command{
		Use:     "low-stock",
		Aliases: []string{"low"},
		Short:   "Items with quantity below the threshold",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := -1
			if cmd.Flags().Changed("threshold") {
				var ok bool
				t, ok = core.ParseThreshold(threshold)
				if !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "Invalid threshold %q, using %d.\n", threshold, t)
				}
			}
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				res, err := env.Service.LowStockReport(ctx, t)
				if err != nil {
					return err
				}
				display.New(cmd.OutOrStdout(), env.Currency).LowStock(res)
				return nil
			})
		},
	}
	low.Flags().StringVarP(&threshold, "threshold", "t", "", "quantity threshold (default from config, 10)")

	report.AddCommand(value, low)
	return report
}

func (r *runner) askCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "ask <request>",
		Short: "Interpret a plain-language request and run it",
		Long:  "Interpret a plain-language request. Changes are only applied with --yes; reports and searches run directly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				out := cmd.OutOrStdout()
				p := display.New(out, env.Currency)

				result, err := env.Service.InterpretCommand(ctx, args[0])
				if err != nil {
					return err
				}
				if result.IsClarification {
					return fmt.Errorf("clarification needed: %s", result.ClarificationMessage)
				}

				proposal := result.Proposal
				if proposal.IsWrite() && !yes {
					p.Proposal(proposal)
					fmt.Fprintln(out, "\nNot applied. Re-run with --yes to apply this change.")
					return nil
				}

				res, err := env.Service.ExecuteProposal(ctx, *proposal)
				if err != nil {
					return err
				}
				switch {
				case res.Add != nil:
					p.AddOutcome(res.Add)
				case res.Update != nil:
					p.Item(res.Update.Item)
				case res.Remove != nil:
					fmt.Fprintf(out, "Deleted %s.\n", res.Remove.Name)
				case res.Items != nil:
					p.Items(res.Items)
				case res.Value != nil:
					p.ValueReport(res.Value)
				case res.LowStock != nil:
					p.LowStock(res.LowStock)
				}
				if proposal.IsWrite() {
					return save(ctx, env, out)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply the interpreted change without asking")
	return cmd
}

func (r *runner) snapshotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List saved snapshots (postgres backend)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withEnv(cmd, func(ctx context.Context, env *Env) error {
				lister, ok := env.Backend.(persistence.SnapshotLister)
				if !ok {
					return errors.New("snapshot listing needs the postgres backend")
				}
				names, err := lister.ListSnapshots(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(names) == 0 {
					fmt.Fprintln(out, "No snapshots saved.")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			})
		},
	}
}

func schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the inventory file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := persistence.FileSchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
