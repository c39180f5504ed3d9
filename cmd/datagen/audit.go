package main

import (
	"github.com/ariefcatur/go-bench-datagen/internal/audit"
	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	kafkax "github.com/ariefcatur/go-bench-datagen/internal/kafka"
	"github.com/ariefcatur/go-bench-datagen/internal/redisx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAuditCmd(a *app) *cobra.Command {
	var (
		group   string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Consume order events and check their country against the Redis mirror until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rdb := redisx.New(a.cfg.RedisAddr)
			defer rdb.Close()

			svc := &audit.Service{Redis: rdb, ServiceName: a.cfg.ServiceName + "-audit", Log: a.log}
			cons := kafkax.NewConsumer(a.cfg.KafkaBrokers, group, dataset.TopicOrderGenerated, workers, a.log)

			a.log.Info("audit consumer started", zap.String("group", group), zap.Int("workers", workers))
			err := cons.Start(cmd.Context(), svc.HandleOrderGenerated)
			st := svc.Stats()
			a.log.Info("audit finished",
				zap.Int64("checked", st.Checked),
				zap.Int64("unknown_customer", st.Unknown),
				zap.Int64("country_mismatch", st.Mismatched),
			)
			return err
		},
	}
	cmd.Flags().StringVar(&group, "group", a.cfg.AuditGroup, "kafka consumer group")
	cmd.Flags().IntVar(&workers, "workers", a.cfg.AuditWorkers, "handler goroutines")
	return cmd
}
