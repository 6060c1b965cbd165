package datagen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"pulsecx/internal/domain"
)

// cityCoords anchors generated records to real city centers.
var cityCoords = map[string][2]float64{
	"Bengaluru": {12.9716, 77.5946},
	"Mumbai":    {19.0760, 72.8777},
	"Delhi":     {28.7041, 77.1025},
	"Hyderabad": {17.3850, 78.4867},
	"Pune":      {18.5204, 73.8567},
	"Chennai":   {13.0827, 80.2707},
	"Kolkata":   {22.5726, 88.3639},
	"Jaipur":    {26.9124, 75.7873},
	"Ahmedabad": {23.0225, 72.5714},
	"Kochi":     {9.9312, 76.2673},
}

var (
	firstNames = []string{
		"Alex", "Blake", "Chitra", "Dev", "Esha", "Farhan", "Gia", "Hari",
		"Isha", "Kabir", "Lena", "Mira", "Nikhil", "Om", "Priya", "Rohan",
		"Sara", "Tanvi", "Uma", "Vikram",
	}
	lastNames = []string{
		"Sharma", "Patel", "Rao", "Iyer", "Khan", "Singh", "Nair", "Das",
		"Mehta", "Kulkarni",
	}
	drinks = []string{"Latte", "Cappuccino", "Espresso", "Hot Cocoa", "Cold Brew", "Mocha"}
)

// Counts sets how many records of each kind a run produces.
type Counts struct {
	Stores    int
	Customers int
	Orders    int
	Coupons   int
}

// DefaultCounts matches the sizes of the reference dataset.
func DefaultCounts() Counts {
	return Counts{Stores: 50, Customers: 10000, Orders: 100000, Coupons: 40000}
}

// Generator produces the four CSV files consumed at startup. A fixed seed
// gives reproducible datasets.
type Generator struct {
	rng *rand.Rand
	dir string
}

func New(dir string, seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), dir: dir}
}

// Run generates all four files. Stores and customers must exist before
// orders and coupons, which reference their IDs.
func (g *Generator) Run(counts Counts) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return err
	}
	storeIDs, err := g.Stores(counts.Stores)
	if err != nil {
		return fmt.Errorf("generate stores: %w", err)
	}
	customerIDs, err := g.Customers(counts.Customers)
	if err != nil {
		return fmt.Errorf("generate customers: %w", err)
	}
	if err := g.Orders(counts.Orders, customerIDs, storeIDs); err != nil {
		return fmt.Errorf("generate orders: %w", err)
	}
	if err := g.Coupons(counts.Coupons, customerIDs, storeIDs); err != nil {
		return fmt.Errorf("generate coupons: %w", err)
	}
	return nil
}

func (g *Generator) Stores(n int) ([]string, error) {
	ids := make([]string, 0, n)
	rows := [][]string{{"store_id", "name", "city", "lat", "lon", "open_hour", "close_hour"}}
	for i := 1; i <= n; i++ {
		city, base := g.pickCity()
		id := fmt.Sprintf("store_%03d", i)
		ids = append(ids, id)
		rows = append(rows, []string{
			id,
			fmt.Sprintf("%s Coffee #%d", city, i),
			city,
			formatCoord(base[0] + g.uniform(-0.02, 0.02)),
			formatCoord(base[1] + g.uniform(-0.02, 0.02)),
			strconv.Itoa(7 + g.rng.Intn(3)),
			strconv.Itoa(20 + g.rng.Intn(4)),
		})
	}
	return ids, g.writeFile("stores.csv", rows)
}

func (g *Generator) Customers(n int) ([]string, error) {
	tiers := []string{
		string(domain.TierBronze), string(domain.TierSilver),
		string(domain.TierGold), string(domain.TierPlatinum),
	}
	tierWeights := []float64{0.5, 0.3, 0.15, 0.05}

	ids := make([]string, 0, n)
	rows := [][]string{{"customer_id", "name", "city", "lat", "lon", "loyalty_tier"}}
	for i := 1; i <= n; i++ {
		city, base := g.pickCity()
		id := fmt.Sprintf("cust_%05d", i)
		ids = append(ids, id)
		rows = append(rows, []string{
			id,
			g.pick(firstNames) + " " + g.pick(lastNames),
			city,
			formatCoord(base[0] + g.uniform(-0.03, 0.03)),
			formatCoord(base[1] + g.uniform(-0.03, 0.03)),
			g.weighted(tiers, tierWeights),
		})
	}
	return ids, g.writeFile("customers.csv", rows)
}

func (g *Generator) Orders(n int, customerIDs, storeIDs []string) error {
	statuses := []string{
		string(domain.StatusPlaced), string(domain.StatusPreparing),
		string(domain.StatusReady), string(domain.StatusDelivered),
	}
	statusWeights := []float64{0.1, 0.2, 0.2, 0.5}
	quantities := []string{"1", "2", "3"}
	quantityWeights := []float64{0.7, 0.2, 0.1}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := [][]string{{"order_id", "customer_id", "store_id", "status", "created_at", "item", "quantity", "total_amount"}}
	for i := 1; i <= n; i++ {
		createdAt := start.Add(
			time.Duration(g.rng.Intn(181))*24*time.Hour +
				time.Duration(7+g.rng.Intn(16))*time.Hour +
				time.Duration(g.rng.Intn(60))*time.Minute)
		quantity, _ := strconv.Atoi(g.weighted(quantities, quantityWeights))
		total := float64(quantity) * g.uniform(2.5, 6.0)
		rows = append(rows, []string{
			fmt.Sprintf("ord_%06d", i),
			g.pick(customerIDs),
			g.pick(storeIDs),
			g.weighted(statuses, statusWeights),
			createdAt.Format("2006-01-02 15:04:05"),
			g.pick(drinks),
			strconv.Itoa(quantity),
			strconv.FormatFloat(total, 'f', 2, 64),
		})
	}
	return g.writeFile("orders.csv", rows)
}

func (g *Generator) Coupons(max int, customerIDs, storeIDs []string) error {
	perCustomer := []string{"0", "1", "2", "3"}
	perCustomerWeights := []float64{0.5, 0.3, 0.15, 0.05}
	discounts := []string{"5", "10", "15", "20"}
	discountWeights := []float64{0.4, 0.3, 0.2, 0.1}

	rows := [][]string{{"coupon_id", "customer_id", "store_id", "discount_percent", "valid_from", "valid_to"}}
	couponID := 1
	for _, cust := range customerIDs {
		if couponID > max {
			break
		}
		n, _ := strconv.Atoi(g.weighted(perCustomer, perCustomerWeights))
		for j := 0; j < n && couponID <= max; j++ {
			validFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).
				Add(time.Duration(g.rng.Intn(31)) * 24 * time.Hour)
			validTo := validFrom.Add(time.Duration(7+g.rng.Intn(24)) * 24 * time.Hour)
			rows = append(rows, []string{
				fmt.Sprintf("cpn_%06d", couponID),
				cust,
				g.pick(storeIDs),
				g.weighted(discounts, discountWeights),
				validFrom.Format("2006-01-02"),
				validTo.Format("2006-01-02"),
			})
			couponID++
		}
	}
	return g.writeFile("coupons.csv", rows)
}

func (g *Generator) pickCity() (string, [2]float64) {
	// map iteration order is random but not seed-reproducible
	names := make([]string, 0, len(cityCoords))
	for name := range cityCoords {
		names = append(names, name)
	}
	sort.Strings(names)
	city := g.pick(names)
	return city, cityCoords[city]
}

func (g *Generator) pick(items []string) string {
	return items[g.rng.Intn(len(items))]
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// weighted picks an item with the given probabilities, which must sum to 1.
func (g *Generator) weighted(items []string, weights []float64) string {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (g *Generator) writeFile(name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(g.dir, name))
	if err != nil {
		return err
	}
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
