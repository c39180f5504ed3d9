package dataset

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_GeneratedDatasetPasses(t *testing.T) {
	ds, err := newTestGenerator(8).Generate(50, 500)
	require.NoError(t, err)
	assert.NoError(t, Validate(ds, fixedNow))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ds *Dataset)
		want   string
	}{
		{"country drift", func(ds *Dataset) { ds.Orders[0].Country = "Atlantis" }, `country "Atlantis"`},
		{"dangling customer", func(ds *Dataset) { ds.Orders[1].CustomerID = 99 }, "does not reference a customer"},
		{"duplicate customer id", func(ds *Dataset) { ds.Customers[2].ID = 1 }, "duplicate customer_id 1"},
		{"order id gap", func(ds *Dataset) { ds.Orders[3].ID = 42 }, "order_id 42 outside"},
		{"bad status", func(ds *Dataset) { ds.Orders[0].Status = "shipped" }, `invalid status "shipped"`},
		{"balance too high", func(ds *Dataset) { ds.Customers[0].Balance = decimal.RequireFromString("10000.01") }, "balance 10000.01"},
		{"total three decimals", func(ds *Dataset) { ds.Orders[0].Total = decimal.RequireFromString("45.125") }, "total 45.125"},
		{"year too old", func(ds *Dataset) { ds.Orders[0].OrderYear = 2021 }, "order_year 2021"},
		{"year in future", func(ds *Dataset) { ds.Orders[0].OrderYear = 2026 }, "order_year 2026"},
		{"empty name", func(ds *Dataset) { ds.Customers[1].Name = "" }, "empty name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := newTestGenerator(4).Generate(5, 10)
			require.NoError(t, err)
			tt.mutate(ds)
			err = Validate(ds, fixedNow)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_BoundsAreInclusive(t *testing.T) {
	ds, err := newTestGenerator(4).Generate(2, 2)
	require.NoError(t, err)
	ds.Customers[0].Balance = MinBalance
	ds.Customers[1].Balance = MaxBalance
	ds.Orders[0].Total = MinTotal
	ds.Orders[1].Total = MaxTotal
	ds.Orders[0].OrderYear = 2022
	ds.Orders[1].OrderYear = 2025
	assert.NoError(t, Validate(ds, fixedNow))
}

func TestValidate_CapsReportedViolations(t *testing.T) {
	ds, err := newTestGenerator(4).Generate(3, 200)
	require.NoError(t, err)
	for i := range ds.Orders {
		ds.Orders[i].Status = "LOST"
	}
	err = Validate(ds, fixedNow)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, maxReported+1)
	assert.Equal(t, "... and 150 more violations", lines[len(lines)-1])
}

func TestValidate_Empty(t *testing.T) {
	err := Validate(&Dataset{}, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no customers")
	assert.Contains(t, err.Error(), "no orders")
}
