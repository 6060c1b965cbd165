package prompt

import (
	"fmt"
	"strings"

	"pulsecx/internal/domain"
)

// Context is the assembled per-request context a prompt is composed from.
type Context struct {
	Customer     *domain.Customer
	RecentOrders []domain.Order
	Store        *domain.Store
	Coupons      []domain.Coupon
}

const preamble = "You are PulseCX, a hyper-personalized retail assistant. " +
	"You MUST answer using only the provided structured context. " +
	"If you don't know something from the context, say you are not sure.\n\n"

const closing = "Respond in under 80 words, friendly and specific.\n"

// Compose builds the backend prompt. The layout and field ordering are
// fixed so identical inputs always produce an identical string. The message
// passed in must already be masked; composition never sees raw user text.
func Compose(ctx Context, maskedMessage string, snippets []string) string {
	var b strings.Builder
	b.WriteString(preamble)

	b.WriteString("Customer context: ")
	if ctx.Customer != nil {
		fmt.Fprintf(&b, "id=%s name=%q city=%s tier=%s",
			ctx.Customer.ID, ctx.Customer.Name, ctx.Customer.City, ctx.Customer.Tier)
	} else {
		b.WriteString("unknown customer")
	}
	b.WriteString("\n")

	b.WriteString("Recent orders: ")
	if len(ctx.RecentOrders) == 0 {
		b.WriteString("none")
	} else {
		for i, o := range ctx.RecentOrders {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s x%d %s ($%.2f, %s", o.Item, o.Quantity, o.Status, o.Total, o.ID)
			if !o.CreatedAt.IsZero() {
				fmt.Fprintf(&b, ", %s", o.CreatedAt.Format("2006-01-02 15:04"))
			}
			b.WriteString(")")
		}
	}
	b.WriteString("\n")

	b.WriteString("Nearest store: ")
	if ctx.Store != nil {
		fmt.Fprintf(&b, "%s (%s, open %d-%d)", ctx.Store.Name, ctx.Store.ID, ctx.Store.OpenHour, ctx.Store.CloseHour)
	} else {
		b.WriteString("none")
	}
	b.WriteString("\n")

	b.WriteString("Available coupons: ")
	if len(ctx.Coupons) == 0 {
		b.WriteString("none")
	} else {
		for i, c := range ctx.Coupons {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s %d%% off at %s", c.ID, c.DiscountPercent, c.StoreID)
			if c.ValidTo != nil {
				fmt.Fprintf(&b, " until %s", c.ValidTo.Format("2006-01-02"))
			}
		}
	}
	b.WriteString("\n")

	if len(snippets) > 0 {
		b.WriteString("\nRelevant policy snippets:\n")
		for i, s := range snippets {
			fmt.Fprintf(&b, "%d) %s\n", i+1, s)
		}
	}

	fmt.Fprintf(&b, "\nUser message: %s\n", maskedMessage)
	b.WriteString(closing)
	return b.String()
}
