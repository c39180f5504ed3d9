package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/runlog"
	"github.com/spf13/cobra"
)

func newRunsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded generation runs with the seeds to reproduce them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := runlog.Open(a.cfg.RunLogPath)
			if err != nil {
				return err
			}
			defer store.Close()
			runs, err := store.List()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tID\tSEED\tCUSTOMERS\tORDERS\tSINKS\tTOOK")
			for _, m := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%v\t%s\n",
					m.StartedAt.Format(time.RFC3339), m.ID, m.Seed, m.Customers, m.Orders, m.Sinks, m.Duration.Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}
}
