package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	CustomersFile = "customers.csv"
	OrdersFile    = "orders.csv"
)

var (
	CustomerHeader = []string{"customer_id", "name", "country", "is_active", "balance"}
	OrderHeader    = []string{"order_id", "customer_id", "status", "total", "country", "order_year"}
)

type Paths struct {
	Customers string
	Orders    string
}

func WriteCustomers(w io.Writer, customers []Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CustomerHeader); err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write(customerRecord(c)); err != nil {
			return fmt.Errorf("customer %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteOrders(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OrderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(orderRecord(o)); err != nil {
			return fmt.Errorf("order %d: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func customerRecord(c Customer) []string {
	return []string{
		strconv.Itoa(c.ID),
		c.Name,
		c.Country,
		strconv.FormatBool(c.IsActive),
		c.Balance.StringFixed(2),
	}
}

func orderRecord(o Order) []string {
	return []string{
		strconv.Itoa(o.ID),
		strconv.Itoa(o.CustomerID),
		string(o.Status),
		o.Total.StringFixed(2),
		o.Country,
		strconv.Itoa(o.OrderYear),
	}
}

// WriteFiles creates (or truncates) customers.csv and orders.csv under dir.
func WriteFiles(dir string, ds *Dataset) (Paths, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create output dir: %w", err)
	}
	p := Paths{
		Customers: filepath.Join(dir, CustomersFile),
		Orders:    filepath.Join(dir, OrdersFile),
	}
	if err := writeFile(p.Customers, func(w io.Writer) error { return WriteCustomers(w, ds.Customers) }); err != nil {
		return Paths{}, err
	}
	if err := writeFile(p.Orders, func(w io.Writer) error { return WriteOrders(w, ds.Orders) }); err != nil {
		return Paths{}, err
	}
	return p, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFiles parses customers.csv and orders.csv from dir back into a Dataset.
// The country lookup is rebuilt from the customer rows.
func ReadFiles(dir string) (*Dataset, error) {
	cf, err := os.Open(filepath.Join(dir, CustomersFile))
	if err != nil {
		return nil, err
	}
	defer cf.Close()
	customers, err := ReadCustomers(cf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CustomersFile, err)
	}

	of, err := os.Open(filepath.Join(dir, OrdersFile))
	if err != nil {
		return nil, err
	}
	defer of.Close()
	orders, err := ReadOrders(of)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OrdersFile, err)
	}

	ds := &Dataset{Customers: customers, Orders: orders}
	ds.countries = newCountryLookup(customers)
	return ds, nil
}

func ReadCustomers(r io.Reader) ([]Customer, error) {
	var out []Customer
	err := readRecords(r, CustomerHeader, func(line int, rec []string) error {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return fieldErr(line, "customer_id", err)
		}
		active, err := parseBoolLiteral(rec[3])
		if err != nil {
			return fieldErr(line, "is_active", err)
		}
		balance, err := parseCents(rec[4])
		if err != nil {
			return fieldErr(line, "balance", err)
		}
		out = append(out, Customer{ID: id, Name: rec[1], Country: rec[2], IsActive: active, Balance: balance})
		return nil
	})
	return out, err
}

func ReadOrders(r io.Reader) ([]Order, error) {
	var out []Order
	err := readRecords(r, OrderHeader, func(line int, rec []string) error {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return fieldErr(line, "order_id", err)
		}
		customerID, err := strconv.Atoi(rec[1])
		if err != nil {
			return fieldErr(line, "customer_id", err)
		}
		total, err := parseCents(rec[3])
		if err != nil {
			return fieldErr(line, "total", err)
		}
		year, err := strconv.Atoi(rec[5])
		if err != nil {
			return fieldErr(line, "order_year", err)
		}
		out = append(out, Order{
			ID:         id,
			CustomerID: customerID,
			Status:     Status(rec[2]),
			Total:      total,
			Country:    rec[4],
			OrderYear:  year,
		})
		return nil
	})
	return out, err
}

func readRecords(r io.Reader, header []string, fn func(line int, rec []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	got, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("missing header row")
	}
	if err != nil {
		return err
	}
	if !slices.Equal(got, header) {
		return fmt.Errorf("unexpected header %v, want %v", got, header)
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := cr.FieldPos(0)
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

func fieldErr(line int, field string, err error) error {
	return fmt.Errorf("line %d: %s: %w", line, field, err)
}

// strconv.ParseBool accepts "TRUE", "1", ...; the files only ever carry the lowercase literals
func parseBoolLiteral(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean literal %q", s)
}

func parseCents(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.StringFixed(2) != s {
		return decimal.Decimal{}, fmt.Errorf("%q does not have exactly two fractional digits", s)
	}
	return d, nil
}
