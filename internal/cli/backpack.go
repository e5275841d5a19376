package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/sortbench/internal/backpack"
	"github.com/roach88/sortbench/internal/input"
	"github.com/roach88/sortbench/internal/render"
)

// BackpackOptions holds flags for the backpack command.
type BackpackOptions struct {
	*RootOptions
	Capacity int
}

// NewBackpackCommand creates the backpack command.
func NewBackpackCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackpackOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backpack",
		Short: "Interactive loot inventory",
		Long: `Start the interactive loot inventory.

Add, remove, list and find items in a small backpack. Items are kept in
insertion order and looked up by name with a linear scan.

With --format json the menu is written to stderr and the final contents are
written to stdout as JSON on exit.

Example:
  sortbench backpack
  sortbench backpack --capacity 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackpack(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Capacity, "capacity", backpack.DefaultCapacity, "maximum number of items")

	return cmd
}

func runBackpack(opts *BackpackOptions, cmd *cobra.Command) error {
	bag, err := backpack.New(opts.Capacity)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid capacity", err)
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		out = cmd.ErrOrStderr()
	}
	p := input.NewPrompter(cmd.InOrStdin(), out)

	fmt.Fprintln(out, "=== Loot Inventory: starting backpack ===")
	err = backpackLoop(bag, p, out)
	if err != nil && !errors.Is(err, io.EOF) {
		return WrapExitError(ExitFailure, "backpack session failed", err)
	}
	logger.Debug("backpack closed", "items", bag.Len())

	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		return f.Success(map[string]any{"items": bag.List()})
	}
	return nil
}

func backpackLoop(bag *backpack.Backpack, p *input.Prompter, out io.Writer) error {
	for {
		fmt.Fprintf(out, "\nItems: %d/%d\n", bag.Len(), bag.Cap())
		fmt.Fprintln(out, "1) Add item")
		fmt.Fprintln(out, "2) Remove item")
		fmt.Fprintln(out, "3) List items")
		fmt.Fprintln(out, "4) Find item")
		fmt.Fprintln(out, "0) Exit")

		choice, err := p.Int("Choose an option: ", 0, 4)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			fmt.Fprintln(out, "Leaving the inventory...")
			return nil
		case 1:
			err = addItem(bag, p, out)
		case 2:
			err = removeItem(bag, p, out)
		case 3:
			render.Items(out, bag.List())
		case 4:
			err = findItem(bag, p, out)
		}
		if err != nil {
			return err
		}
	}
}

func addItem(bag *backpack.Backpack, p *input.Prompter, out io.Writer) error {
	if bag.Len() >= bag.Cap() {
		fmt.Fprintln(out, "Backpack is full! Cannot add more items.")
		return nil
	}

	name, err := requiredText(p, out, "Item name: ")
	if err != nil {
		return err
	}
	kind, err := p.Text("Item kind (weapon, ammo, healing, ...): ")
	if err != nil {
		return err
	}
	qty, err := p.Int("Quantity: ", 1, backpack.MaxQuantity)
	if err != nil {
		return err
	}

	if err := bag.Add(backpack.Item{Name: name, Kind: kind, Quantity: qty}); err != nil {
		fmt.Fprintf(out, "%v.\n", err)
		return nil
	}
	fmt.Fprintln(out, "Item added.")
	return nil
}

func removeItem(bag *backpack.Backpack, p *input.Prompter, out io.Writer) error {
	if bag.Len() == 0 {
		fmt.Fprintln(out, "Backpack is empty!")
		return nil
	}

	name, err := p.Text("Name of the item to remove: ")
	if err != nil {
		return err
	}
	if _, err := bag.Remove(name); err != nil {
		fmt.Fprintf(out, "%v.\n", err)
		return nil
	}
	fmt.Fprintf(out, "Item %q removed.\n", name)
	return nil
}

func findItem(bag *backpack.Backpack, p *input.Prompter, out io.Writer) error {
	if bag.Len() == 0 {
		fmt.Fprintln(out, "Backpack is empty!")
		return nil
	}

	name, err := p.Text("Name of the item to find: ")
	if err != nil {
		return err
	}
	item, idx, err := bag.Find(name)
	if err != nil {
		fmt.Fprintf(out, "%v.\n", err)
		return nil
	}
	fmt.Fprintf(out, "Item found at position %d:\n", idx+1)
	fmt.Fprintf(out, "Name: %s\nKind: %s\nQuantity: %d\n", item.Name, item.Kind, item.Quantity)
	return nil
}

// requiredText prompts until the answer is non-empty after normalization.
func requiredText(p *input.Prompter, out io.Writer, prompt string) (string, error) {
	for {
		s, err := p.Text(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(out, "Value must not be empty. Try again.")
	}
}
