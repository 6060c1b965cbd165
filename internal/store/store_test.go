package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecx/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DataConfig{
		Customers: writeFile(t, dir, "customers.csv",
			"customer_id,name,city,lat,lon,loyalty_tier\n"+
				"cust_00001,Mira Rao,Bengaluru,12.9716,77.5946,Gold\n"+
				"cust_00002,Dev Khan,Mumbai,19.0760,72.8777,Bronze\n"),
		Stores: writeFile(t, dir, "stores.csv",
			"store_id,name,city,lat,lon,open_hour,close_hour\n"+
				"store_001,Bengaluru Coffee #1,Bengaluru,12.9720,77.5950,8,22\n"),
		Orders: writeFile(t, dir, "orders.csv",
			"order_id,customer_id,store_id,status,created_at,item,quantity,total_amount\n"+
				"ord_000001,cust_00001,store_001,delivered,2025-03-01 09:15:00,Latte,1,4.50\n"+
				"ord_000002,cust_00001,store_001,delivered,2025-05-20 10:00:00,Mocha,2,9.00\n"+
				"ord_000003,cust_00001,store_001,ready,2025-04-10 16:30:00,Espresso,1,3.00\n"+
				"ord_000004,cust_00001,store_001,placed,2025-01-05 08:00:00,Cold Brew,1,5.00\n"),
		Coupons: writeFile(t, dir, "coupons.csv",
			"coupon_id,customer_id,store_id,discount_percent,valid_from,valid_to\n"+
				"cpn_000001,cust_00001,store_001,10,2025-06-01,2025-06-30\n"+
				"cpn_000002,cust_00001,store_001,20,2025-06-01,\n"+
				"cpn_000003,cust_00002,store_001,5,2025-06-01,2025-06-10\n"),
	}
	ds, err := Load(cfg)
	require.NoError(t, err)
	return ds
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(config.DataConfig{Customers: "does-not-exist.csv"})
	assert.Error(t, err)
}

func TestLoad_MalformedCouponExpiryFails(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DataConfig{
		Customers: writeFile(t, dir, "customers.csv",
			"customer_id,name,city,lat,lon,loyalty_tier\n"+
				"cust_00001,Mira Rao,Bengaluru,12.9716,77.5946,Gold\n"),
		Stores: writeFile(t, dir, "stores.csv",
			"store_id,name,city,lat,lon,open_hour,close_hour\n"+
				"store_001,Bengaluru Coffee #1,Bengaluru,12.9720,77.5950,8,22\n"),
		Orders: writeFile(t, dir, "orders.csv",
			"order_id,customer_id,store_id,status,created_at,item,quantity,total_amount\n"),
		// a garbled valid_to must not load as a never-expiring coupon
		Coupons: writeFile(t, dir, "coupons.csv",
			"coupon_id,customer_id,store_id,discount_percent,valid_from,valid_to\n"+
				"cpn_000001,cust_00001,store_001,10,2025-06-01,06/30/2025\n"),
	}
	_, err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid_to")
}

func TestCustomerByID(t *testing.T) {
	ds := testDataset(t)

	c, ok := ds.CustomerByID("cust_00001")
	require.True(t, ok)
	assert.Equal(t, "Mira Rao", c.Name)
	assert.Equal(t, "Gold", string(c.Tier))
	assert.InDelta(t, 12.9716, c.Lat, 1e-9)

	_, ok = ds.CustomerByID("cust_99999")
	assert.False(t, ok)
}

func TestRecentOrders(t *testing.T) {
	ds := testDataset(t)

	t.Run("most recent first, capped at n", func(t *testing.T) {
		orders := ds.RecentOrders("cust_00001", 3)
		require.Len(t, orders, 3)
		assert.Equal(t, "ord_000002", orders[0].ID)
		assert.Equal(t, "ord_000003", orders[1].ID)
		assert.Equal(t, "ord_000001", orders[2].ID)
	})

	t.Run("unknown customer returns nothing", func(t *testing.T) {
		assert.Empty(t, ds.RecentOrders("cust_99999", 3))
	})
}

func TestActiveCoupons(t *testing.T) {
	ds := testDataset(t)
	date := func(s string) time.Time {
		t2, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return t2
	}

	t.Run("expired coupons are filtered", func(t *testing.T) {
		active := ds.ActiveCoupons("cust_00001", date("2025-07-15"))
		require.Len(t, active, 1)
		assert.Equal(t, "cpn_000002", active[0].ID, "coupon without expiry is always active")
	})

	t.Run("valid_to is inclusive", func(t *testing.T) {
		active := ds.ActiveCoupons("cust_00001", date("2025-06-30"))
		assert.Len(t, active, 2)
	})

	t.Run("file order is preserved", func(t *testing.T) {
		active := ds.ActiveCoupons("cust_00001", date("2025-06-05"))
		require.Len(t, active, 2)
		assert.Equal(t, "cpn_000001", active[0].ID)
	})

	t.Run("unknown customer returns nothing", func(t *testing.T) {
		assert.Empty(t, ds.ActiveCoupons("cust_99999", date("2025-06-05")))
	})
}

func TestCounts(t *testing.T) {
	ds := testDataset(t)
	customers, stores, orders, coupons := ds.Counts()
	assert.Equal(t, 2, customers)
	assert.Equal(t, 1, stores)
	assert.Equal(t, 4, orders)
	assert.Equal(t, 3, coupons)
}
