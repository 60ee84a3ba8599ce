package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/output"
	"github.com/janeyeyey/mcal/internal/store"
)

const defaultEditURL = "https://github.com/janeyeyey/marketing-calendar-p/edit/main/public/events.json"

type globalOptions struct {
	JSON    bool
	JSONL   bool
	Plain   bool
	Fields  string
	Quiet   bool
	Verbose bool
	NoInput bool

	ReadOnly bool
	Profile  string
	Config   string

	Store string
	Data  string

	EditURL                 string
	ContinuationIncludesEnd bool
	SchemaVersion           string
}

func (o *globalOptions) Editable() bool { return !o.ReadOnly }

func (o *globalOptions) outputMode() output.Mode {
	switch {
	case o.JSON:
		return output.ModeJSON
	case o.JSONL:
		return output.ModeJSONL
	case o.Plain:
		return output.ModePlain
	default:
		return output.ModeAuto
	}
}

// storeFactory builds the backing store for a resolved option set. Tests swap
// it out for a fake.
var storeFactory = func(opts *globalOptions) (store.Store, error) {
	switch opts.Store {
	case "", "json":
		return store.NewJSONFileStore(opts.dataPath()), nil
	case "sqlite":
		return store.OpenSQLiteStore(opts.dataPath())
	case "http":
		if strings.TrimSpace(opts.Data) == "" {
			return nil, fmt.Errorf("http store requires --data to be an events URL")
		}
		return store.NewHTTPStore(opts.Data), nil
	default:
		return nil, fmt.Errorf("unknown store %q (expected json, sqlite, or http)", opts.Store)
	}
}

func (o *globalOptions) dataPath() string {
	if strings.TrimSpace(o.Data) != "" {
		return o.Data
	}
	base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if base == "" {
		home := strings.TrimSpace(os.Getenv("HOME"))
		if home == "" {
			name := "events.json"
			if o.Store == "sqlite" {
				name = "events.db"
			}
			return name
		}
		base = filepath.Join(home, ".local", "share")
	}
	name := "events.json"
	if o.Store == "sqlite" {
		name = "events.db"
	}
	return filepath.Join(base, "mcal", name)
}

func (o *globalOptions) journalPath() string {
	return filepath.Join(filepath.Dir(o.dataPath()), "history.jsonl")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		return ExitCode(err)
	}
	return 0
}

// NewRootCommand assembles the mcal command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "mcal",
		Short:         "Marketing events calendar",
		Long:          "mcal browses and edits a marketing events calendar: month and day views, solution filtering, and event management over a shared events file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&opts.JSON, "json", false, "emit a JSON envelope")
	pf.BoolVar(&opts.JSONL, "jsonl", false, "emit one JSON object per line")
	pf.BoolVar(&opts.Plain, "plain", false, "emit plain text")
	pf.StringVar(&opts.Fields, "fields", "", "comma separated fields for plain output")
	pf.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics")
	pf.BoolVar(&opts.NoInput, "no-input", false, "never prompt; fail instead")
	pf.BoolVar(&opts.ReadOnly, "read-only", false, "refuse all mutations")
	pf.StringVar(&opts.Profile, "profile", "", "config profile to apply")
	pf.StringVar(&opts.Config, "config", "", "path to a config file")
	pf.StringVar(&opts.Store, "store", "", "store backend: json, sqlite, or http")
	pf.StringVar(&opts.Data, "data", "", "events file path (or URL for the http store)")
	pf.StringVar(&opts.EditURL, "edit-url", defaultEditURL, "hosted editor URL for the events file")
	pf.BoolVar(&opts.ContinuationIncludesEnd, "continuation-includes-end", true, "render the last day of a span as a continuation")
	pf.StringVar(&opts.SchemaVersion, "schema-version", contract.SchemaVersion, "envelope schema version")

	root.AddCommand(
		newMonthCommand(opts),
		newDayCommand(opts),
		newEventsCommand(opts),
		newExportCommand(opts),
		newEditURLCommand(opts),
		newStatusCommand(opts),
		newDoctorCommand(opts),
		newInitCommand(opts),
		newHistoryCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

// buildContext resolves configuration for a command invocation and opens the
// store.
func buildContext(cmd *cobra.Command, opts *globalOptions) (*output.Printer, store.Store, *globalOptions, error) {
	resolved, err := resolveGlobalOptions(cmd, opts)
	if err != nil {
		return nil, nil, nil, Wrap(exitGeneric, err)
	}

	conflicts := conflictCount(resolved.JSON, resolved.JSONL, resolved.Plain)
	printer := &output.Printer{
		Mode:          resolved.outputMode(),
		Command:       cmd.CommandPath(),
		Fields:        splitCSV(resolved.Fields),
		Quiet:         resolved.Quiet,
		SchemaVersion: resolved.SchemaVersion,
		Out:           cmd.OutOrStdout(),
		Err:           cmd.ErrOrStderr(),
	}
	if conflicts > 1 {
		err := fmt.Errorf("--json, --jsonl and --plain are mutually exclusive")
		printer.Error(contract.ErrInvalidUsage, err.Error(), "pick one output mode")
		return nil, nil, nil, WrapPrinted(exitUsage, err)
	}

	st, err := storeFactory(resolved)
	if err != nil {
		printer.Error(contract.ErrStoreUnavailable, err.Error(), "check --store and --data")
		return nil, nil, nil, WrapPrinted(exitStoreUnavailable, err)
	}
	return printer, st, resolved, nil
}

// loadSnapshot reads all events for view commands. A missing or unreachable
// store degrades to an empty calendar with a warning instead of failing the
// whole view.
func loadSnapshot(ctx context.Context, printer *output.Printer, st store.Store, verbose bool) []contract.Event {
	events, err := st.List(ctx)
	if err != nil {
		if verbose {
			fmt.Fprintf(printer.ErrWriter(), "warning: could not load events: %v\n", err)
		} else {
			fmt.Fprintln(printer.ErrWriter(), "warning: could not load events; showing an empty calendar")
		}
		return nil
	}
	return events
}

func requireEditable(printer *output.Printer, st store.Store, opts *globalOptions) error {
	if !opts.Editable() {
		err := errors.New("calendar is read-only")
		printer.Error(contract.ErrReadOnly, err.Error(), "unset --read-only (or editable=false in config) to edit")
		return WrapPrinted(exitReadOnly, err)
	}
	if store.IsReadOnly(st) {
		err := errors.New("the http store cannot be edited")
		printer.Error(contract.ErrReadOnly, err.Error(), "edit the hosted file instead: run `mcal edit-url`")
		return WrapPrinted(exitReadOnly, err)
	}
	return nil
}

func parseSolutions(printer *output.Printer, raw []string) ([]contract.Solution, error) {
	var out []contract.Solution
	for _, chunk := range raw {
		for _, item := range splitCSV(chunk) {
			s := contract.Solution(item)
			if !contract.KnownSolution(s) {
				err := fmt.Errorf("unknown solution %q", item)
				printer.Error(contract.ErrValidation, err.Error(), "known solutions: "+solutionHint())
				return nil, WrapPrinted(exitUsage, err)
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func solutionHint() string {
	names := make([]string, 0, len(contract.Solutions))
	for _, s := range contract.Solutions {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func failWithHint(printer *output.Printer, code contract.ErrorCode, err error, hint string) error {
	printer.Error(code, err.Error(), hint)
	return AppError{Code: exitFor(code), Err: err, Printed: true}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func conflictCount(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func stdinInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// promptConfirmID asks the user to retype an event id before a destructive
// operation.
func promptConfirmID(in io.Reader, out io.Writer, id string) (bool, error) {
	fmt.Fprintf(out, "Type the event id (%s) to confirm: ", id)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(line) == id, nil
}
