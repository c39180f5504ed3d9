package dataset

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderGeneratedPayload_JSON(t *testing.T) {
	o := Order{ID: 12, CustomerID: 4, Status: StatusCancelled, Total: decimal.RequireFromString("99.9"), Country: "Chile", OrderYear: 2023}
	b, err := json.Marshal(NewOrderGeneratedPayload(o))
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":12,"customer_id":4,"status":"CANCELLED","total":"99.90","country":"Chile","order_year":2023}`, string(b))
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, []byte("42"), PartitionKey(42))
}
