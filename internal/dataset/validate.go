package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const maxReported = 50

type violations struct {
	errs    []error
	dropped int
}

func (v *violations) add(format string, args ...any) {
	if len(v.errs) >= maxReported {
		v.dropped++
		return
	}
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *violations) err() error {
	if v.dropped > 0 {
		v.errs = append(v.errs, fmt.Errorf("... and %d more violations", v.dropped))
	}
	return errors.Join(v.errs...)
}

// Validate checks both record sets against the dataset contract: dense 1..N ids, resolvable
// customer references, the copied country, value ranges with exactly two decimals, the status
// enumeration and the order_year window relative to now. It returns nil or every violation joined
// (the first maxReported of them).
func Validate(ds *Dataset, now time.Time) error {
	var v violations
	if len(ds.Customers) == 0 {
		v.add("no customers")
	}
	if len(ds.Orders) == 0 {
		v.add("no orders")
	}

	seen := make([]bool, len(ds.Customers)+1)
	for i, c := range ds.Customers {
		switch {
		case c.ID < 1 || c.ID > len(ds.Customers):
			v.add("customer row %d: customer_id %d outside 1..%d", i+1, c.ID, len(ds.Customers))
		case seen[c.ID]:
			v.add("customer row %d: duplicate customer_id %d", i+1, c.ID)
		default:
			seen[c.ID] = true
		}
		if c.Name == "" {
			v.add("customer %d: empty name", c.ID)
		}
		if c.Country == "" {
			v.add("customer %d: empty country", c.ID)
		}
		if !inCents(c.Balance, MinBalance, MaxBalance) {
			v.add("customer %d: balance %s outside [%s, %s] or not 2dp", c.ID, c.Balance, MinBalance.StringFixed(2), MaxBalance.StringFixed(2))
		}
	}

	minYear, maxYear := now.Year()-orderWindowYears, now.Year()
	orderSeen := make([]bool, len(ds.Orders)+1)
	for i, o := range ds.Orders {
		switch {
		case o.ID < 1 || o.ID > len(ds.Orders):
			v.add("order row %d: order_id %d outside 1..%d", i+1, o.ID, len(ds.Orders))
		case orderSeen[o.ID]:
			v.add("order row %d: duplicate order_id %d", i+1, o.ID)
		default:
			orderSeen[o.ID] = true
		}
		if country, ok := ds.CountryOf(o.CustomerID); !ok {
			v.add("order %d: customer_id %d does not reference a customer", o.ID, o.CustomerID)
		} else if o.Country != country {
			v.add("order %d: country %q, customer %d has %q", o.ID, o.Country, o.CustomerID, country)
		}
		if !o.Status.Valid() {
			v.add("order %d: invalid status %q", o.ID, o.Status)
		}
		if !inCents(o.Total, MinTotal, MaxTotal) {
			v.add("order %d: total %s outside [%s, %s] or not 2dp", o.ID, o.Total, MinTotal.StringFixed(2), MaxTotal.StringFixed(2))
		}
		if o.OrderYear < minYear || o.OrderYear > maxYear {
			v.add("order %d: order_year %d outside [%d, %d]", o.ID, o.OrderYear, minYear, maxYear)
		}
	}
	return v.err()
}

func inCents(d, lo, hi decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
}
