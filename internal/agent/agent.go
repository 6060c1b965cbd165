package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pulsecx/internal/domain"
	"pulsecx/internal/geo"
	"pulsecx/internal/knowledge"
	"pulsecx/internal/llm"
	"pulsecx/internal/privacy"
	"pulsecx/internal/prompt"
	"pulsecx/internal/store"
)

// Response is the structured result of one handled message.
type Response struct {
	Reply  string         `json:"reply"`
	Store  *domain.Store  `json:"store"`
	Coupon *domain.Coupon `json:"coupon"`
}

// Agent is the per-request orchestrator tying together data lookups, geo
// resolution, masking, knowledge retrieval, prompt composition, and answer
// dispatch. All dependencies are injected already built; the agent holds no
// mutable state and is safe for concurrent requests.
type Agent struct {
	data       *store.Dataset
	retriever  knowledge.Retriever
	dispatcher *llm.Dispatcher
	topK       int
	now        func() time.Time
	log        *zap.SugaredLogger
}

func New(data *store.Dataset, retriever knowledge.Retriever, dispatcher *llm.Dispatcher, topK int, log *zap.SugaredLogger) *Agent {
	if topK <= 0 {
		topK = 3
	}
	return &Agent{
		data:       data,
		retriever:  retriever,
		dispatcher: dispatcher,
		topK:       topK,
		now:        time.Now,
		log:        log,
	}
}

// HandleMessage assembles the request context and produces a reply. Lookup
// misses are not errors: an unknown customer, no nearby store, or no active
// coupons simply leave the corresponding context empty. The dispatcher
// absorbs backend failure, so handling always yields a well-formed response.
func (a *Agent) HandleMessage(ctx context.Context, userID, message string, lat, lon float64) Response {
	now := a.now()

	var customer *domain.Customer
	if c, ok := a.data.CustomerByID(userID); ok {
		customer = &c
	}
	orders := a.data.RecentOrders(userID, 3)
	coupons := a.data.ActiveCoupons(userID, now)
	nearest := geo.NearestOpenStore(a.data.Stores(), lat, lon, now.Hour())

	// Retrieval sees the unmasked message: the knowledge corpus is policy
	// text, and real entities in the query improve matching. Only the
	// masked form ever reaches the prompt.
	snippets := a.retriever.Retrieve(message, a.topK)
	masked := privacy.MaskText(message)

	p := prompt.Compose(prompt.Context{
		Customer:     customer,
		RecentOrders: orders,
		Store:        nearest,
		Coupons:      coupons,
	}, masked, snippets)
	reply := a.dispatcher.Dispatch(ctx, p)

	var coupon *domain.Coupon
	if len(coupons) > 0 {
		coupon = &coupons[0]
	}

	a.log.Infow("message handled",
		"user_known", customer != nil,
		"recent_orders", len(orders),
		"active_coupons", len(coupons),
		"store_resolved", nearest != nil,
		"snippets", len(snippets))

	return Response{Reply: reply, Store: nearest, Coupon: coupon}
}
