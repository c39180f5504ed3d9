package dataset

import (
	"testing"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(seed, clock.NewFake(fixedNow))
}

func TestGenerate_ExactCountsAndSequentialIDs(t *testing.T) {
	ds, err := newTestGenerator(1).Generate(25, 300)
	require.NoError(t, err)
	require.Len(t, ds.Customers, 25)
	require.Len(t, ds.Orders, 300)

	for i, c := range ds.Customers {
		assert.Equal(t, i+1, c.ID)
	}
	for i, o := range ds.Orders {
		assert.Equal(t, i+1, o.ID)
	}
}

func TestGenerate_OrdersCopyCustomerCountry(t *testing.T) {
	ds, err := newTestGenerator(7).Generate(40, 1000)
	require.NoError(t, err)

	byID := map[int]Customer{}
	for _, c := range ds.Customers {
		byID[c.ID] = c
	}
	for _, o := range ds.Orders {
		c, ok := byID[o.CustomerID]
		require.Truef(t, ok, "order %d references unknown customer %d", o.ID, o.CustomerID)
		assert.Equal(t, c.Country, o.Country, "order %d", o.ID)
	}
}

func TestGenerate_ValuesWithinContract(t *testing.T) {
	ds, err := newTestGenerator(42).Generate(200, 2000)
	require.NoError(t, err)
	require.NoError(t, Validate(ds, fixedNow))

	statuses := map[Status]int{}
	for _, o := range ds.Orders {
		statuses[o.Status]++
		assert.GreaterOrEqual(t, o.OrderYear, 2022)
		assert.LessOrEqual(t, o.OrderYear, 2025)
	}
	assert.Len(t, statuses, len(Statuses), "every status should be drawn over 2000 orders")

	for _, c := range ds.Customers {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Country)
	}
}

func TestGenerate_SingleCustomer(t *testing.T) {
	ds, err := newTestGenerator(3).Generate(1, 50)
	require.NoError(t, err)
	for _, o := range ds.Orders {
		assert.Equal(t, 1, o.CustomerID)
		assert.Equal(t, ds.Customers[0].Country, o.Country)
	}
}

func TestGenerate_SameSeedSameDataset(t *testing.T) {
	a, err := newTestGenerator(99).Generate(30, 120)
	require.NoError(t, err)
	b, err := newTestGenerator(99).Generate(30, 120)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := newTestGenerator(100).Generate(30, 120)
	require.NoError(t, err)
	assert.NotEqual(t, a.Customers, c.Customers)
}

func TestGenerate_InvalidCounts(t *testing.T) {
	tests := []struct {
		name      string
		customers int
		orders    int
		want      string
	}{
		{"zero customers", 0, 5, "customers=0"},
		{"negative customers", -3, 5, "customers=-3"},
		{"zero orders", 3, 0, "orders=0"},
		{"negative orders", 3, -1, "orders=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := newTestGenerator(1).Generate(tt.customers, tt.orders)
			require.ErrorIs(t, err, ErrInvalidCount)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, ds)
		})
	}
}

func TestDataset_CountryOf(t *testing.T) {
	ds, err := newTestGenerator(5).Generate(3, 1)
	require.NoError(t, err)

	for _, c := range ds.Customers {
		got, ok := ds.CountryOf(c.ID)
		require.True(t, ok)
		assert.Equal(t, c.Country, got)
	}
	_, ok := ds.CountryOf(0)
	assert.False(t, ok)
	_, ok = ds.CountryOf(4)
	assert.False(t, ok)
}
