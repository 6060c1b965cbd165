package domain

import "time"

// LoyaltyTier is the customer loyalty level assigned by the rewards program.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "Bronze"
	TierSilver   LoyaltyTier = "Silver"
	TierGold     LoyaltyTier = "Gold"
	TierPlatinum LoyaltyTier = "Platinum"
)

// OrderStatus tracks order fulfilment. The generator emits statuses in the
// progression placed -> preparing -> ready -> delivered, but consumers must
// not assume the ordering holds for externally supplied records.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// Customer is a loaded customer profile. Immutable after load.
type Customer struct {
	ID   string      `json:"customer_id"`
	Name string      `json:"name"`
	City string      `json:"city"`
	Lat  float64     `json:"lat"`
	Lon  float64     `json:"lon"`
	Tier LoyaltyTier `json:"loyalty_tier"`
}

// Store is a physical service point with a daily open/close hour window.
// Hours are 0-23 on a single-day schedule; no cross-midnight handling.
type Store struct {
	ID        string  `json:"store_id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	OpenHour  int     `json:"open_hour"`
	CloseHour int     `json:"close_hour"`
}

// OpenAt reports whether the store is open at the given hour of day.
func (s Store) OpenAt(hour int) bool {
	return s.OpenHour <= hour && hour <= s.CloseHour
}

// Order is a single purchase record. Immutable once loaded.
type Order struct {
	ID         string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	StoreID    string      `json:"store_id"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	Item       string      `json:"item"`
	Quantity   int         `json:"quantity"`
	Total      float64     `json:"total_amount"`
}

// Coupon is a discount record for a customer/store pair. A nil ValidTo means
// the coupon never expires.
type Coupon struct {
	ID              string     `json:"coupon_id"`
	CustomerID      string     `json:"customer_id"`
	StoreID         string     `json:"store_id"`
	DiscountPercent int        `json:"discount_percent"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
}

// ActiveAt reports whether the coupon is redeemable at the given time.
func (c Coupon) ActiveAt(t time.Time) bool {
	return c.ValidTo == nil || !c.ValidTo.Before(t)
}

// Document is a single knowledge-base source file.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a window of a document used for retrieval indexing.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
}

// SearchResult is a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
