package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
)

var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS customers (
	customer_id INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	country     TEXT NOT NULL,
	is_active   BOOLEAN NOT NULL,
	balance     NUMERIC(12,2) NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS orders (
	order_id    INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
	status      TEXT NOT NULL CHECK (status IN ('SHIPPED','OPEN','CANCELLED')),
	total       NUMERIC(12,2) NOT NULL,
	country     TEXT NOT NULL,
	order_year  INTEGER NOT NULL
)`,
}

// Repo loads a generated dataset into Postgres for benchmark queries.
type Repo struct{ DB *pgxpool.Pool }

type LoadResult struct {
	Customers int64
	Orders    int64
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaSQL {
		if _, err := r.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load replaces the contents of both tables with ds in a single transaction. Column order
// matches the csv headers.
func (r *Repo) Load(ctx context.Context, ds *Dataset) (LoadResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return LoadResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE orders, customers`); err != nil {
		return LoadResult{}, fmt.Errorf("truncate: %w", err)
	}

	var res LoadResult
	res.Customers, err = tx.CopyFrom(ctx, pgx.Identifier{"customers"}, CustomerHeader, pgx.CopyFromRows(customerRows(ds.Customers)))
	if err != nil {
		return LoadResult{}, fmt.Errorf("copy customers: %w", err)
	}
	res.Orders, err = tx.CopyFrom(ctx, pgx.Identifier{"orders"}, OrderHeader, pgx.CopyFromRows(orderRows(ds.Orders)))
	if err != nil {
		return LoadResult{}, fmt.Errorf("copy orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return LoadResult{}, err
	}
	return res, nil
}

// amounts are always 2dp, so the float64 round-trip into NUMERIC(12,2) is exact
func customerRows(customers []Customer) [][]any {
	return lo.Map(customers, func(c Customer, _ int) []any {
		return []any{int32(c.ID), c.Name, c.Country, c.IsActive, c.Balance.InexactFloat64()}
	})
}

func orderRows(orders []Order) [][]any {
	return lo.Map(orders, func(o Order, _ int) []any {
		return []any{int32(o.ID), int32(o.CustomerID), string(o.Status), o.Total.InexactFloat64(), o.Country, int32(o.OrderYear)}
	})
}
