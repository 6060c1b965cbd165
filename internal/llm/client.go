package llm

import "context"

// Client is the interface any answer-generation backend implements.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FallbackReply is the single deterministic answer returned whenever no
// backend is configured or a backend call fails. It keeps the system
// operable with zero external dependencies or credentials.
const FallbackReply = "Thanks for reaching out! Based on your profile and recent visits, the nearest open " +
	"store is ready to serve you, and we have at least one active coupon on your account. " +
	"Please head to the suggested store and show this message at the counter to redeem your offer."
