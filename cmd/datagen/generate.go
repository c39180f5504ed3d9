package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	kafkax "github.com/ariefcatur/go-bench-datagen/internal/kafka"
	"github.com/ariefcatur/go-bench-datagen/internal/postgres"
	"github.com/ariefcatur/go-bench-datagen/internal/redisx"
	"github.com/ariefcatur/go-bench-datagen/internal/runlog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	customers int
	orders    int
	seed      int64
	out       string
	postgres  bool
	redis     bool
	kafka     bool
	runLog    bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := generateOptions{runLog: true}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate customers.csv and orders.csv, optionally loading them into the configured sinks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.customers, "customers", a.cfg.Customers, "number of customers")
	f.IntVar(&opts.orders, "orders", a.cfg.Orders, "number of orders")
	f.Int64Var(&opts.seed, "seed", a.cfg.Seed, "random seed (0 derives one from the clock)")
	f.StringVar(&opts.out, "out", a.cfg.OutputDir, "output directory")
	f.BoolVar(&opts.postgres, "postgres", false, "load both tables into POSTGRES_DSN")
	f.BoolVar(&opts.redis, "redis", false, "mirror the customer country lookup into REDIS_ADDR")
	f.BoolVar(&opts.kafka, "kafka", false, "publish one event per order to KAFKA_BROKERS")
	f.BoolVar(&opts.runLog, "run-log", true, "record the run in RUNLOG_PATH")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts generateOptions) error {
	ctx := cmd.Context()
	start := time.Now()
	startedAt := a.clock.Now()
	seed := opts.seed
	if seed == 0 {
		seed = a.clock.Now().UnixNano()
	}

	a.log.Info("generating dataset",
		zap.Int("customers", opts.customers),
		zap.Int("orders", opts.orders),
		zap.Int64("seed", seed),
	)
	ds, err := dataset.NewGenerator(seed, a.clock).Generate(opts.customers, opts.orders)
	if err != nil {
		return err
	}
	paths, err := dataset.WriteFiles(opts.out, ds)
	if err != nil {
		return err
	}
	a.log.Info("dataset written", zap.String("customers", paths.Customers), zap.String("orders", paths.Orders))

	m := runlog.NewManifest(seed, opts.customers, opts.orders, opts.out, startedAt)
	m.Sinks = []string{"csv"}

	sinkErr := runSinks(ctx, a, opts, &m, ds)
	m.Duration = time.Since(start)

	// the csv files exist even when a sink failed, so the seed is recorded either way
	if opts.runLog {
		if err := recordRun(a.cfg.RunLogPath, m); err != nil {
			a.log.Warn("run not recorded", zap.String("path", a.cfg.RunLogPath), zap.Error(err))
		}
	}
	if sinkErr != nil {
		return sinkErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run %s seed %d: %d customers, %d orders\n", m.ID, seed, len(ds.Customers), len(ds.Orders))
	return nil
}

// runSinks loads ds into each enabled sink in turn and appends the ones that succeeded to m.Sinks.
func runSinks(ctx context.Context, a *app, opts generateOptions, m *runlog.Manifest, ds *dataset.Dataset) error {
	if opts.postgres {
		if err := loadPostgres(ctx, a, ds); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		m.Sinks = append(m.Sinks, "postgres")
	}
	if opts.redis {
		if err := mirrorRedis(ctx, a, m.ID, ds); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		m.Sinks = append(m.Sinks, "redis")
	}
	if opts.kafka {
		if err := publishKafka(ctx, a, m.ID, ds); err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		m.Sinks = append(m.Sinks, "kafka")
	}
	return nil
}

func loadPostgres(ctx context.Context, a *app, ds *dataset.Dataset) error {
	db, err := postgres.Connect(ctx, a.cfg.PostgresDSN, a.cfg.PostgresMaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := &dataset.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	res, err := repo.Load(ctx, ds)
	if err != nil {
		return err
	}
	a.log.Info("postgres loaded", zap.Int64("customers", res.Customers), zap.Int64("orders", res.Orders))
	return nil
}

func mirrorRedis(ctx context.Context, a *app, runID string, ds *dataset.Dataset) error {
	rdb := redisx.New(a.cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.PublishCountries(ctx, rdb, runID, ds); err != nil {
		return err
	}
	a.log.Info("country lookup mirrored", zap.String("run_id", runID), zap.Int("customers", len(ds.Customers)))
	return nil
}

func publishKafka(ctx context.Context, a *app, runID string, ds *dataset.Dataset) error {
	prod := kafkax.NewProducer(a.cfg.KafkaBrokers, dataset.TopicOrderGenerated, 1024, a.log)
	prod.Start(ctx)
	kafkax.PublishOrders(prod, runID, a.cfg.ServiceName, ds.Orders)
	prod.Close()
	prod.WaitClosed()

	if n := prod.Failed(); n > 0 {
		return fmt.Errorf("%d of %d order events not delivered", n, len(ds.Orders))
	}
	a.log.Info("order events published", zap.String("topic", dataset.TopicOrderGenerated), zap.Int("events", len(ds.Orders)))
	return nil
}

func recordRun(path string, m runlog.Manifest) error {
	store, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Put(m)
}
