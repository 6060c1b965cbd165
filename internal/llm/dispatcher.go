package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pulsecx/internal/config"
)

// Dispatcher routes a prompt to the configured backend provider. Dispatch
// never fails: unknown providers, missing credentials, and backend errors
// all resolve to FallbackReply.
type Dispatcher struct {
	provider string
	client   Client
	log      *zap.SugaredLogger
}

// NewDispatcher builds the dispatcher for the configured provider. Provider
// names are case-insensitive; "template" and anything unrecognized use the
// deterministic fallback. Backend construction failure (for example a
// missing API key) leaves the dispatcher on the fallback path.
func NewDispatcher(cfg config.LLMConfig, log *zap.SugaredLogger) *Dispatcher {
	d := &Dispatcher{provider: strings.ToLower(cfg.Provider), log: log}
	switch d.provider {
	case "openai":
		client, err := NewOpenAIClient(cfg.APIKeyEnv, cfg.Model, cfg.MaxTokens)
		if err != nil {
			log.Warnw("openai backend unavailable, using template replies", "error", err)
			return d
		}
		d.client = client
	case "template", "":
	default:
		log.Warnw("unknown llm provider, using template replies", "provider", cfg.Provider)
	}
	return d
}

// NewDispatcherWithClient wires an explicit backend client, mainly for tests.
func NewDispatcherWithClient(provider string, client Client, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{provider: strings.ToLower(provider), client: client, log: log}
}

// Dispatch sends the prompt to the backend and returns the generated text,
// or FallbackReply on any failure. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string) string {
	if d.client == nil {
		return FallbackReply
	}
	reply, err := d.client.Generate(ctx, prompt)
	if err != nil {
		d.log.Warnw("backend generation failed, using fallback reply", "provider", d.provider, "error", err)
		return FallbackReply
	}
	if reply == "" {
		d.log.Warnw("backend returned empty reply, using fallback", "provider", d.provider)
		return FallbackReply
	}
	return reply
}
