package dataset

import "github.com/shopspring/decimal"

type Customer struct {
	ID       int
	Name     string
	Country  string
	IsActive bool
	Balance  decimal.Decimal // 2dp, [50.00, 10000.00]
}

type Order struct {
	ID         int
	CustomerID int
	Status     Status
	Total      decimal.Decimal // 2dp, [40.00, 600.00]
	Country    string          // copied from the customer, never sampled
	OrderYear  int
}

// Dataset is one generation run: both record sets plus the customer_id -> country lookup
// the orders were built from. The lookup is not mutated after Generate returns.
type Dataset struct {
	Customers []Customer
	Orders    []Order

	countries []string // index = customer_id; slot 0 unused
}

// CountryOf returns the country recorded for a customer at generation time.
func (d *Dataset) CountryOf(customerID int) (string, bool) {
	if customerID < 1 || customerID >= len(d.countries) {
		return "", false
	}
	return d.countries[customerID], true
}

// ids outside 1..len(customers) are left out; Validate reports them
func newCountryLookup(customers []Customer) []string {
	out := make([]string, len(customers)+1)
	for _, c := range customers {
		if c.ID >= 1 && c.ID <= len(customers) {
			out[c.ID] = c.Country
		}
	}
	return out
}
