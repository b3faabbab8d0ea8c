package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/attendance-payroll/api"
	"github.com/warp/attendance-payroll/export"
	"github.com/warp/attendance-payroll/factory"
	"github.com/warp/attendance-payroll/generic"
	"github.com/warp/attendance-payroll/payroll"
)

func processCmd() *cobra.Command {
	var (
		holidays  []string
		justified []string
		format    string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "process <file|->",
		Short: "Compute payroll for one attendance report",
		Long:  "Reads a report file (or stdin with -) and prints the payroll result as JSON, or writes a CSV, XLSX or PDF export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			text, err := readReport(cmd, args[0])
			if err != nil {
				return err
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := payroll.NewEngine(store, store,
				payroll.WithLogger(logger.Named("engine")),
				payroll.WithLookupTimeout(cfg.Engine.LookupTimeout))

			res, err := engine.ProcessReport(cmd.Context(), text, payroll.Overrides{
				Holidays:  generic.NewDateSet(holidays...),
				Justified: generic.NewDateSet(justified...),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer file.Close()
				w = file
			}

			if f == export.FormatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(api.ToPayrollResultDTO(res))
			}
			return export.Write(w, f, res)
		},
	}

	cmd.Flags().StringSliceVar(&holidays, "holiday", nil, "Day of month treated as a holiday (repeatable)")
	cmd.Flags().StringSliceVar(&justified, "justified", nil, "Day of month with a justified absence (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv, xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func readReport(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}
	return string(data), nil
}

func workersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workers",
		Short: "List the worker directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			workers, err := store.ListWorkers(cmd.Context())
			if err != nil {
				return err
			}

			f := factory.NewWorkerFactory()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRATE\tDAYS\tSTART\tEND")
			for _, p := range workers {
				wj := f.ToJSON(p)
				fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s\n",
					wj.Name, wj.HourlyRate.StringFixed(2), wj.ScheduledDays, wj.ScheduledStart, wj.ScheduledEnd)
			}
			return tw.Flush()
		},
	}
}
