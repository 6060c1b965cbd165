package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"pulsecx/internal/config"
	"pulsecx/internal/domain"
)

// Dataset holds the four record collections loaded at startup. It is
// read-only after Load and safe for unsynchronized concurrent reads.
type Dataset struct {
	customers map[string]domain.Customer
	stores    []domain.Store
	orders    map[string][]domain.Order // by customer, file order
	coupons   map[string][]domain.Coupon
}

// Load parses the four CSV files referenced by the config. A missing or
// malformed file is an error; callers treat it as fatal at startup.
func Load(cfg config.DataConfig) (*Dataset, error) {
	ds := &Dataset{
		customers: make(map[string]domain.Customer),
		orders:    make(map[string][]domain.Order),
		coupons:   make(map[string][]domain.Coupon),
	}

	if err := readCSV(cfg.Customers, func(row record) error {
		c := domain.Customer{
			ID:   row.str("customer_id"),
			Name: row.str("name"),
			City: row.str("city"),
			Tier: domain.LoyaltyTier(row.str("loyalty_tier")),
		}
		var err error
		if c.Lat, err = row.float("lat"); err != nil {
			return err
		}
		if c.Lon, err = row.float("lon"); err != nil {
			return err
		}
		ds.customers[c.ID] = c
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	if err := readCSV(cfg.Stores, func(row record) error {
		s := domain.Store{
			ID:   row.str("store_id"),
			Name: row.str("name"),
			City: row.str("city"),
		}
		var err error
		if s.Lat, err = row.float("lat"); err != nil {
			return err
		}
		if s.Lon, err = row.float("lon"); err != nil {
			return err
		}
		if s.OpenHour, err = row.int("open_hour"); err != nil {
			return err
		}
		if s.CloseHour, err = row.int("close_hour"); err != nil {
			return err
		}
		ds.stores = append(ds.stores, s)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	if err := readCSV(cfg.Orders, func(row record) error {
		o := domain.Order{
			ID:         row.str("order_id"),
			CustomerID: row.str("customer_id"),
			StoreID:    row.str("store_id"),
			Status:     domain.OrderStatus(row.str("status")),
			Item:       row.str("item"),
		}
		var err error
		if o.Quantity, err = row.int("quantity"); err != nil {
			return err
		}
		if o.Total, err = row.float("total_amount"); err != nil {
			return err
		}
		if o.CreatedAt, err = row.time("created_at"); err != nil {
			return err
		}
		ds.orders[o.CustomerID] = append(ds.orders[o.CustomerID], o)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	if err := readCSV(cfg.Coupons, func(row record) error {
		c := domain.Coupon{
			ID:         row.str("coupon_id"),
			CustomerID: row.str("customer_id"),
			StoreID:    row.str("store_id"),
		}
		var err error
		if c.DiscountPercent, err = row.int("discount_percent"); err != nil {
			return err
		}
		// A garbled expiry must fail the load: a nil ValidTo means the
		// coupon never expires.
		from, err := row.time("valid_from")
		if err != nil {
			return err
		}
		if !from.IsZero() {
			c.ValidFrom = &from
		}
		to, err := row.time("valid_to")
		if err != nil {
			return err
		}
		if !to.IsZero() {
			c.ValidTo = &to
		}
		ds.coupons[c.CustomerID] = append(ds.coupons[c.CustomerID], c)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load coupons: %w", err)
	}

	return ds, nil
}

// CustomerByID looks up a single customer.
func (d *Dataset) CustomerByID(id string) (domain.Customer, bool) {
	c, ok := d.customers[id]
	return c, ok
}

// RecentOrders returns the customer's last n orders, most recent first.
// Orders without timestamps keep their file order.
func (d *Dataset) RecentOrders(customerID string, n int) []domain.Order {
	orders := d.orders[customerID]
	if len(orders) == 0 {
		return nil
	}
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ActiveCoupons returns the customer's coupons still redeemable at now,
// in file order. Coupons without an expiry are always active.
func (d *Dataset) ActiveCoupons(customerID string, now time.Time) []domain.Coupon {
	var active []domain.Coupon
	for _, c := range d.coupons[customerID] {
		if c.ActiveAt(now) {
			active = append(active, c)
		}
	}
	return active
}

// Stores returns all loaded stores in file order. The slice must not be
// mutated by callers.
func (d *Dataset) Stores() []domain.Store {
	return d.stores
}

// Counts reports collection sizes for startup logging.
func (d *Dataset) Counts() (customers, stores, orders, coupons int) {
	customers = len(d.customers)
	stores = len(d.stores)
	for _, o := range d.orders {
		orders += len(o)
	}
	for _, c := range d.coupons {
		coupons += len(c)
	}
	return
}

// record maps a CSV row by header name.
type record struct {
	header map[string]int
	fields []string
}

func (r record) str(col string) string {
	if i, ok := r.header[col]; ok && i < len(r.fields) {
		return r.fields[i]
	}
	return ""
}

func (r record) float(col string) (float64, error) {
	raw := r.str(col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

func (r record) int(col string) (int, error) {
	raw := r.str(col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func (r record) time(col string) (time.Time, error) {
	raw := r.str(col)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %s: unparsable time %q", col, raw)
}

func readCSV(path string, each func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: empty file", path)
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[name] = i
	}
	for _, fields := range rows[1:] {
		if err := each(record{header: header, fields: fields}); err != nil {
			return err
		}
	}
	return nil
}
