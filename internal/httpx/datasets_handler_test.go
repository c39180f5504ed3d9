package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/ariefcatur/go-bench-datagen/internal/metrics"
	"github.com/ariefcatur/go-bench-datagen/internal/runlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRuns struct {
	runs []runlog.Manifest
	err  error
}

func (s stubRuns) List() ([]runlog.Manifest, error) { return s.runs, s.err }

func newTestServer(t *testing.T, runs RunLister) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	r := NewRouter(zap.NewNop(), reg)
	h := &DatasetsHandler{
		Clock:            clock.NewFake(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		Metrics:          metrics.New(reg),
		Runs:             runs,
		Log:              zap.NewNop(),
		DefaultCustomers: 10,
		DefaultOrders:    20,
		MaxRows:          1000,
	}
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestDatasets_TablesAreConsistentForOneSeed(t *testing.T) {
	srv := newTestServer(t, nil)

	res, body := get(t, srv.URL+"/datasets/customers.csv?customers=3&orders=5&seed=77")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", res.Header.Get("Content-Type"))
	assert.Equal(t, "77", res.Header.Get(HeaderSeed))
	customers, err := dataset.ReadCustomers(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, customers, 3)

	res, body = get(t, srv.URL+"/datasets/orders.csv?customers=3&orders=5&seed=77")
	require.Equal(t, http.StatusOK, res.StatusCode)
	orders, err := dataset.ReadOrders(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, orders, 5)

	countries := map[int]string{}
	for _, c := range customers {
		countries[c.ID] = c.Country
	}
	for _, o := range orders {
		assert.Equal(t, countries[o.CustomerID], o.Country)
	}
}

func TestDatasets_Defaults(t *testing.T) {
	srv := newTestServer(t, nil)
	res, body := get(t, srv.URL+"/datasets/orders.csv")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(HeaderSeed))
	assert.Len(t, strings.Split(strings.TrimSuffix(body, "\n"), "\n"), 21)
}

func TestDatasets_BadParams(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, q := range []string{
		"customers=abc",
		"orders=1.5",
		"seed=x",
		"customers=0",
		"orders=-2",
		"customers=5000",
	} {
		t.Run(q, func(t *testing.T) {
			res, body := get(t, srv.URL+"/datasets/customers.csv?"+q)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			var e map[string]string
			require.NoError(t, json.Unmarshal([]byte(body), &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestRuns(t *testing.T) {
	m := runlog.NewManifest(5, 3, 5, ".", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	srv := newTestServer(t, stubRuns{runs: []runlog.Manifest{m}})
	res, body := get(t, srv.URL+"/runs")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var got []runlog.Manifest
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)

	srv = newTestServer(t, stubRuns{err: errors.New("boom")})
	res, _ = get(t, srv.URL+"/runs")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	srv = newTestServer(t, nil)
	_, body = get(t, srv.URL+"/runs")
	assert.JSONEq(t, `[]`, body)
}

func TestHealthzAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	res, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)

	get(t, srv.URL+"/datasets/customers.csv?customers=2&orders=3&seed=1")
	_, body = get(t, srv.URL+"/metrics")
	assert.Contains(t, body, `datagen_rows_generated_total{table="customers"} 2`)
	assert.Contains(t, body, `datagen_rows_generated_total{table="orders"} 3`)
}
