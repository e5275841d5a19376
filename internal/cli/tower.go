package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/input"
	"github.com/roach88/sortbench/internal/journal"
	"github.com/roach88/sortbench/internal/measure"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/render"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/session"
)

// MaxTowerCapacity bounds --capacity.
const MaxTowerCapacity = 1000

// TowerOptions holds flags for the tower command.
type TowerOptions struct {
	*RootOptions
	Capacity int

	// Clock and IDs override the session defaults (for testing).
	Clock measure.Clock
	IDs   journal.IDGenerator
}

// TowerSummary is the JSON payload printed when the tower session ends.
type TowerSummary struct {
	Records      []record.Record   `json:"records"`
	State        string            `json:"state"`
	SortedByName bool              `json:"sorted_by_name"`
	History      []journal.Entry   `json:"history"`
	Totals       []journal.OpTotal `json:"totals"`
}

// NewTowerCommand creates the tower command.
func NewTowerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TowerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tower",
		Short: "Interactive sort/search workbench",
		Long: `Start the interactive escape-tower workbench.

Register components (name, category, priority), sort them by name, category
or priority, and look them up by name. Every sort and search reports its
comparison count and elapsed time and is kept in the session history.

Binary search is only available after sorting by name; any insert clears
that order again.

With --format json the menu is written to stderr and a JSON summary of the
session (records, history, totals) is written to stdout on exit.

Example:
  sortbench tower
  sortbench tower --capacity 5
  printf '1\nCore\nPart\n5\n2\n0\n' | sortbench tower --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTower(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Capacity, "capacity", bench.DefaultCapacity, "maximum number of components")

	return cmd
}

// tower is one interactive session.
type tower struct {
	sess      *session.Session
	validator *input.Validator
	prompt    *input.Prompter
	out       io.Writer
	notices   *OutputFormatter
}

func runTower(opts *TowerOptions, cmd *cobra.Command) error {
	if opts.Capacity < 1 || opts.Capacity > MaxTowerCapacity {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid capacity %d: must be between 1 and %d", opts.Capacity, MaxTowerCapacity))
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	sess, err := session.New(session.Config{
		Capacity: opts.Capacity,
		Clock:    opts.Clock,
		IDs:      opts.IDs,
		Logger:   logger,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to start session", err)
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			logger.Error("error closing session", "error", closeErr)
		}
	}()

	validator, err := input.NewValidator()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build record validator", err)
	}

	// JSON output keeps stdout for the summary alone.
	menuOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		menuOut = cmd.ErrOrStderr()
	}

	t := &tower{
		sess:      sess,
		validator: validator,
		prompt:    input.NewPrompter(cmd.InOrStdin(), menuOut),
		out:       menuOut,
		notices:   &OutputFormatter{Format: "text", Writer: menuOut, Verbose: opts.Verbose},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := t.loop(ctx); err != nil {
		return WrapExitError(ExitFailure, "tower session failed", err)
	}

	if opts.Format == "json" {
		summary, err := t.summary(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read session history", err)
		}
		f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		return f.Success(summary)
	}
	return nil
}

// loop runs the menu until the user exits or input ends.
func (t *tower) loop(ctx context.Context) error {
	fmt.Fprintln(t.out, "=== Escape Tower: component prioritization and assembly ===")
	for {
		t.menu()
		choice, err := t.prompt.Int("Choose an option: ", 0, 9)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			fmt.Fprintln(t.out, "Exiting... good luck with the escape!")
			return nil
		case 1:
			err = t.add(ctx)
		case 2:
			render.Records(t.out, t.sess.Records())
		case 3:
			err = t.sort(ctx, record.FieldName)
		case 4:
			err = t.sort(ctx, record.FieldCategory)
		case 5:
			err = t.sort(ctx, record.FieldPriority)
		case 6:
			err = t.search(ctx, search.ModeBinary)
		case 7:
			err = t.assemble(ctx)
		case 8:
			err = t.history(ctx)
		case 9:
			err = t.search(ctx, search.ModeLinear)
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *tower) menu() {
	fmt.Fprintf(t.out, "\nComponents: %d/%d (%s)\n", t.sess.Len(), t.sess.Cap(), t.sess.State())
	fmt.Fprintf(t.out, "1) Add component (max %d)\n", t.sess.Cap())
	fmt.Fprintln(t.out, "2) List components")
	fmt.Fprintln(t.out, "3) Sort by NAME (bubble sort)")
	fmt.Fprintln(t.out, "4) Sort by CATEGORY (insertion sort)")
	fmt.Fprintln(t.out, "5) Sort by PRIORITY (selection sort)")
	fmt.Fprintln(t.out, "6) Binary search by NAME (after sorting by name)")
	fmt.Fprintln(t.out, "7) Final assembly (sort and check the key component)")
	fmt.Fprintln(t.out, "8) Measurement history")
	fmt.Fprintln(t.out, "9) Linear search by NAME")
	fmt.Fprintln(t.out, "0) Exit")
}

func (t *tower) add(ctx context.Context) error {
	if t.sess.Len() >= t.sess.Cap() {
		fmt.Fprintf(t.out, "Component limit reached (%d).\n", t.sess.Cap())
		return nil
	}

	rec, err := t.prompt.Record(t.validator)
	if err != nil {
		return err
	}
	if err := t.sess.Insert(ctx, rec); err != nil {
		return t.reject(err)
	}
	fmt.Fprintln(t.out, "Component added.")
	return nil
}

// sort previews the sort on a copy, then applies it to the collection.
func (t *tower) sort(ctx context.Context, field record.Field) error {
	if t.sess.Len() == 0 {
		fmt.Fprintln(t.out, "No components to sort.")
		return nil
	}

	preview, err := t.sess.Sort(ctx, field, bench.TargetCopy)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.out, "\nPreview (collection unchanged):")
	render.Records(t.out, preview.Records)
	render.SortLine(t.out, preview)

	applied, err := t.sess.Sort(ctx, field, bench.TargetAuthoritative)
	if err != nil {
		return err
	}
	render.SortLine(t.out, applied)
	fmt.Fprintf(t.out, "Sort by %s applied to the collection.\n", field)
	return nil
}

func (t *tower) search(ctx context.Context, mode search.Mode) error {
	key, err := t.prompt.Text("Name to search: ")
	if err != nil {
		return err
	}

	res, err := t.sess.Search(ctx, mode, key)
	if err != nil {
		return t.reject(err)
	}
	render.SearchLine(t.out, res)
	if res.Found {
		rec := t.sess.Records()[res.Index]
		fmt.Fprintf(t.out, "Name: %s | Category: %s | Priority: %d\n", rec.Name, rec.Category, rec.Priority)
	}
	return nil
}

func (t *tower) assemble(ctx context.Context) error {
	if t.sess.Len() == 0 {
		fmt.Fprintln(t.out, "No components registered for assembly.")
		return nil
	}

	fmt.Fprintln(t.out, "\nChoose the strategy for the final assembly:")
	for i, f := range record.Fields {
		fmt.Fprintf(t.out, "%d) By %s\n", i+1, f)
	}
	choice, err := t.prompt.Int("Strategy: ", 1, len(record.Fields))
	if err != nil {
		return err
	}
	key, err := t.prompt.Text("Key component name: ")
	if err != nil {
		return err
	}

	res, err := t.sess.Assemble(ctx, record.Fields[choice-1], key)
	if err != nil {
		return t.reject(err)
	}
	fmt.Fprintln(t.out, "\nComponents ordered by the chosen strategy:")
	render.Records(t.out, res.Sort.Records)
	render.Assembly(t.out, res)
	return nil
}

func (t *tower) history(ctx context.Context) error {
	entries, err := t.sess.History(ctx)
	if err != nil {
		return err
	}
	totals, err := t.sess.Totals(ctx)
	if err != nil {
		return err
	}
	render.History(t.out, entries, totals)
	return nil
}

// reject prints collection rejections and passes anything else through.
func (t *tower) reject(err error) error {
	if session.OutcomeOf(err) == "" {
		return err
	}
	return t.notices.Rejection(err)
}

func (t *tower) summary(ctx context.Context) (TowerSummary, error) {
	entries, err := t.sess.History(ctx)
	if err != nil {
		return TowerSummary{}, err
	}
	totals, err := t.sess.Totals(ctx)
	if err != nil {
		return TowerSummary{}, err
	}
	return TowerSummary{
		Records:      t.sess.Records(),
		State:        t.sess.State().String(),
		SortedByName: t.sess.IsSortedByName(),
		History:      entries,
		Totals:       totals,
	}, nil
}
