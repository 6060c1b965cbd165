package main

import (
	"flag"
	"log"

	"pulsecx/internal/datagen"
)

func main() {
	defaults := datagen.DefaultCounts()

	var (
		dir       string
		seed      int64
		stores    int
		customers int
		orders    int
		coupons   int
	)
	flag.StringVar(&dir, "out", "data", "Output directory for the CSV files")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.IntVar(&stores, "stores", defaults.Stores, "Number of stores")
	flag.IntVar(&customers, "customers", defaults.Customers, "Number of customers")
	flag.IntVar(&orders, "orders", defaults.Orders, "Number of orders")
	flag.IntVar(&coupons, "coupons", defaults.Coupons, "Maximum number of coupons")
	flag.Parse()

	g := datagen.New(dir, seed)
	err := g.Run(datagen.Counts{
		Stores:    stores,
		Customers: customers,
		Orders:    orders,
		Coupons:   coupons,
	})
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	log.Printf("dataset written to %s", dir)
}
