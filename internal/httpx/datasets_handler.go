package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/ariefcatur/go-bench-datagen/internal/metrics"
	"github.com/ariefcatur/go-bench-datagen/internal/runlog"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const HeaderSeed = "X-Datagen-Seed"

type RunLister interface {
	List() ([]runlog.Manifest, error)
}

// DatasetsHandler serves generated tables on demand. Requesting customers.csv and orders.csv
// with the same counts and seed yields two halves of one consistent dataset.
type DatasetsHandler struct {
	Clock            clock.Clock
	Metrics          *metrics.Metrics
	Runs             RunLister // optional
	Log              *zap.Logger
	DefaultCustomers int
	DefaultOrders    int
	MaxRows          int
}

type table int

const (
	tableCustomers table = iota
	tableOrders
)

func (h *DatasetsHandler) Register(r chi.Router) {
	r.Get("/datasets/customers.csv", h.serveTable(tableCustomers))
	r.Get("/datasets/orders.csv", h.serveTable(tableOrders))
	r.Get("/runs", h.listRuns)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type genParams struct {
	customers, orders int
	seed              int64
}

func (h *DatasetsHandler) parseParams(r *http.Request) (genParams, error) {
	q := r.URL.Query()
	p := genParams{customers: h.DefaultCustomers, orders: h.DefaultOrders, seed: h.Clock.Now().UnixNano()}
	var err error
	if s := q.Get("customers"); s != "" {
		if p.customers, err = strconv.Atoi(s); err != nil {
			return p, fmt.Errorf("invalid customers %q", s)
		}
	}
	if s := q.Get("orders"); s != "" {
		if p.orders, err = strconv.Atoi(s); err != nil {
			return p, fmt.Errorf("invalid orders %q", s)
		}
	}
	if s := q.Get("seed"); s != "" {
		if p.seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return p, fmt.Errorf("invalid seed %q", s)
		}
	}
	if h.MaxRows > 0 && (p.customers > h.MaxRows || p.orders > h.MaxRows) {
		return p, fmt.Errorf("at most %d rows per table", h.MaxRows)
	}
	return p, nil
}

func (h *DatasetsHandler) serveTable(t table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.parseParams(r)
		if err != nil {
			h.Metrics.Failures.WithLabelValues("bad_params").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		start := time.Now()
		ds, err := dataset.NewGenerator(p.seed, h.Clock).Generate(p.customers, p.orders)
		if err != nil {
			h.Metrics.Failures.WithLabelValues("invalid_count").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.Metrics.Observe(ds, time.Since(start))

		// encode fully before the status line so a failure can still become a 500
		var buf bytes.Buffer
		if t == tableCustomers {
			err = dataset.WriteCustomers(&buf, ds.Customers)
		} else {
			err = dataset.WriteOrders(&buf, ds.Orders)
		}
		if err != nil {
			h.Log.Error("encode dataset", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode failed"})
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set(HeaderSeed, strconv.FormatInt(p.seed, 10))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func (h *DatasetsHandler) listRuns(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		writeJSON(w, http.StatusOK, []runlog.Manifest{})
		return
	}
	runs, err := h.Runs.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []runlog.Manifest{}
	}
	writeJSON(w, http.StatusOK, runs)
}
