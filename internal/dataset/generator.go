package dataset

import (
	"errors"
	"fmt"
	mrand "math/rand"
	"math/rand/v2"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
)

const (
	DefaultCustomers = 15000
	DefaultOrders    = 150000

	// amounts are sampled as whole cents so every value is exactly 2dp and the bounds are inclusive
	minBalanceCents = 5000
	maxBalanceCents = 1000000
	minTotalCents   = 4000
	maxTotalCents   = 60000

	orderWindowYears = 3
)

var (
	MinBalance = decimal.New(minBalanceCents, -2)
	MaxBalance = decimal.New(maxBalanceCents, -2)
	MinTotal   = decimal.New(minTotalCents, -2)
	MaxTotal   = decimal.New(maxTotalCents, -2)
)

var ErrInvalidCount = errors.New("count must be at least 1")

// Generator builds datasets from one explicit seed. The numeric source and the fake-data source
// are both derived from it, so equal seeds and an equal clock reproduce the same dataset.
type Generator struct {
	rand  *rand.Rand
	fake  faker.Faker
	clock clock.Clock
}

func NewGenerator(seed int64, c clock.Clock) *Generator {
	if c == nil {
		c = clock.System{}
	}
	return &Generator{
		rand:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		fake:  faker.NewWithSeed(mrand.NewSource(seed)),
		clock: c,
	}
}

// Generate produces exactly customers customer rows (ids 1..customers) and orders order rows
// (ids 1..orders). Customers are fully built before the first order is drawn.
func (g *Generator) Generate(customers, orders int) (*Dataset, error) {
	if customers < 1 {
		return nil, fmt.Errorf("%w: customers=%d", ErrInvalidCount, customers)
	}
	if orders < 1 {
		return nil, fmt.Errorf("%w: orders=%d", ErrInvalidCount, orders)
	}

	ds := &Dataset{Customers: g.customers(customers)}
	ds.countries = newCountryLookup(ds.Customers)
	ds.Orders = g.orders(orders, ds.countries)
	return ds, nil
}

func (g *Generator) customers(n int) []Customer {
	out := make([]Customer, 0, n)
	for id := 1; id <= n; id++ {
		out = append(out, Customer{
			ID:       id,
			Name:     g.fake.Person().Name(),
			Country:  g.fake.Address().Country(),
			IsActive: g.rand.IntN(2) == 1,
			Balance:  g.cents(minBalanceCents, maxBalanceCents),
		})
	}
	return out
}

func (g *Generator) orders(n int, countries []string) []Order {
	now := g.clock.Now()
	from := now.AddDate(-orderWindowYears, 0, 0)
	customerCount := len(countries) - 1

	out := make([]Order, 0, n)
	for id := 1; id <= n; id++ {
		customerID := 1 + g.rand.IntN(customerCount)
		out = append(out, Order{
			ID:         id,
			CustomerID: customerID,
			Status:     Statuses[g.rand.IntN(len(Statuses))],
			Total:      g.cents(minTotalCents, maxTotalCents),
			Country:    countries[customerID],
			OrderYear:  g.orderDate(from, now).Year(),
		})
	}
	return out
}

func (g *Generator) orderDate(from, to time.Time) time.Time {
	d := g.fake.Time().TimeBetween(from, to).In(to.Location())
	// TimeBetween works in whole seconds; keep the result inside the window
	if d.Before(from) {
		return from
	}
	if d.After(to) {
		return to
	}
	return d
}

func (g *Generator) cents(min, max int64) decimal.Decimal {
	return decimal.New(min+g.rand.Int64N(max-min+1), -2)
}
