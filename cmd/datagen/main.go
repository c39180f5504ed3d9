package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/ariefcatur/go-bench-datagen/internal/config"
	"github.com/ariefcatur/go-bench-datagen/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg   config.Config
	log   *zap.Logger
	clock clock.Clock
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "datagen",
		Short: "datagen generates consistent customers/orders benchmark datasets.",
		Long: `datagen writes customers.csv and orders.csv where every order references an existing
customer and carries that customer's country. Without a subcommand it runs generate
with the configured counts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			log, err := logger.New(a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, generateOptions{
				customers: a.cfg.Customers,
				orders:    a.cfg.Orders,
				seed:      a.cfg.Seed,
				out:       a.cfg.OutputDir,
				runLog:    true,
			})
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newRunsCmd(a))
	root.AddCommand(newAuditCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: config.Load(), clock: clock.System{}}
	err := newRootCmd(a).ExecuteContext(ctx)
	if a.log != nil {
		if err != nil {
			a.log.Error("datagen failed", zap.Error(err))
		}
		_ = a.log.Sync()
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
