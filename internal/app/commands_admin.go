package app

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/output"
	"github.com/janeyeyey/mcal/internal/store"
)

func newStatusCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved configuration and data source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			storeKind := resolved.Store
			if storeKind == "" {
				storeKind = "json"
			}
			status := map[string]any{
				"store":    storeKind,
				"data":     resolved.dataPath(),
				"profile":  resolved.Profile,
				"editable": resolved.Editable() && !store.IsReadOnly(st),
				"editUrl":  resolved.EditURL,
				"version":  BuildVersionString(),
			}

			if storeKind != "http" {
				if info, err := os.Stat(resolved.dataPath()); err == nil {
					status["dataSize"] = humanize.Bytes(uint64(info.Size()))
					status["dataModified"] = humanize.Time(info.ModTime())
				} else {
					status["dataMissing"] = true
				}
			}
			if events, err := st.List(cmd.Context()); err == nil {
				status["events"] = len(events)
			}

			if printer.EffectiveSuccessMode() == output.ModePlain {
				w := printer.OutWriter()
				fmt.Fprintf(w, "store:     %s\n", status["store"])
				fmt.Fprintf(w, "data:      %s\n", status["data"])
				if v, ok := status["dataSize"]; ok {
					fmt.Fprintf(w, "data file: %s, modified %s\n", v, status["dataModified"])
				}
				if _, ok := status["dataMissing"]; ok {
					fmt.Fprintln(w, "data file: missing (run `mcal init`)")
				}
				if v, ok := status["events"]; ok {
					fmt.Fprintf(w, "events:    %d\n", v)
				}
				fmt.Fprintf(w, "profile:   %s\n", status["profile"])
				fmt.Fprintf(w, "editable:  %v\n", status["editable"])
				fmt.Fprintf(w, "edit url:  %s\n", status["editUrl"])
				fmt.Fprintf(w, "version:   %s\n", status["version"])
				return nil
			}
			return printer.Success(status, nil, nil)
		},
	}
	return cmd
}

func newDoctorCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the calendar's data source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			checks, err := st.Doctor(cmd.Context())
			if err != nil {
				return failWithHint(printer, contract.ErrStoreUnavailable, err, "check --store and --data")
			}

			failed := 0
			for _, c := range checks {
				if c.Status == "fail" {
					failed++
				}
			}

			if printer.EffectiveSuccessMode() == output.ModePlain {
				w := printer.OutWriter()
				for _, c := range checks {
					fmt.Fprintf(w, "%-4s %s: %s\n", c.Status, c.Name, c.Message)
				}
				if failed > 0 {
					return failWithHint(printer, contract.ErrStoreUnavailable,
						fmt.Errorf("%d of %d checks failed", failed, len(checks)), "")
				}
				return nil
			}

			if err := printer.Success(checks, map[string]any{"failed": failed}, nil); err != nil {
				return err
			}
			if failed > 0 {
				return WrapPrinted(exitStoreUnavailable, fmt.Errorf("%d of %d checks failed", failed, len(checks)))
			}
			return nil
		},
	}
	return cmd
}

var seedEvents = []contract.Event{
	{
		Title:    "Quarterly Solutions Webinar",
		Solution: contract.SolutionAllCSAs,
		Date:     "2026-09-10",
		Time:     "10:00 - 11:00",
		Location: "Online (Teams)",
	},
	{
		Title:    "Security Hands-on Workshop",
		Solution: contract.SolutionSecurity,
		Date:     "2026-09-22",
		EndDate:  "2026-09-24",
		Location: "Seoul Office",
	},
}

func newInitCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the events file with sample events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if err := requireEditable(printer, st, resolved); err != nil {
				return err
			}

			path := resolved.dataPath()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return failWithHint(printer, contract.ErrInvalidUsage,
						fmt.Errorf("%s already exists", path),
						"pass --force to reseed it")
				}
			}
			if force {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return failWithHint(printer, contract.ErrGeneric, err, "")
				}
				if s, ok := st.(*store.SQLiteStore); ok {
					_ = s.Close()
					st, err = storeFactory(resolved)
					if err != nil {
						return failWithHint(printer, contract.ErrStoreUnavailable, err, "")
					}
				}
			}

			created := make([]contract.Event, 0, len(seedEvents))
			for _, ev := range seedEvents {
				added, err := st.Add(cmd.Context(), ev)
				if err != nil {
					return storeFailure(printer, err, "")
				}
				created = append(created, *added)
			}
			return printer.Success(map[string]any{
				"path":   path,
				"events": len(created),
			}, nil, nil)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing events file")
	return cmd
}

func newVersionCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mcal version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, _, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if printer.EffectiveSuccessMode() == output.ModePlain {
				fmt.Fprintln(printer.OutWriter(), "mcal "+BuildVersionString())
				return nil
			}
			return printer.Success(map[string]any{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}, nil, nil)
		},
	}
}
