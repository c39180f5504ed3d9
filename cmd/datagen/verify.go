package main

import (
	"fmt"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Check customers.csv and orders.csv in dir against the dataset contract.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.OutputDir
			if len(args) == 1 {
				dir = args[0]
			}
			ds, err := dataset.ReadFiles(dir)
			if err != nil {
				return err
			}
			if err := dataset.Validate(ds, a.clock.Now()); err != nil {
				return fmt.Errorf("dataset in %s is inconsistent:\n%w", dir, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d customers, %d orders\n", len(ds.Customers), len(ds.Orders))
			return nil
		},
	}
}
