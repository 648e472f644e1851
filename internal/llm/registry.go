package llm

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/rbarros/fintrack/internal/common"
)

// Registry holds the configured provider clients and selects one per call.
type Registry struct {
	clients map[Provider]ChatClient
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		clients: make(map[Provider]ChatClient),
		logger:  logger,
	}
}

// Register adds a configured client. Providers without credentials are simply
// never registered, which is what makes them invisible to Dispatch.
func (r *Registry) Register(p Provider, c ChatClient) {
	r.clients[p] = c
}

// Providers reports the registered providers in dispatch order.
func (r *Registry) Providers() []Provider {
	var out []Provider
	for _, p := range dispatchOrder {
		if _, ok := r.clients[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Dispatch sends the prompt to a single provider and returns its raw text
// output along with the provider that served it.
//
// Selection: an explicitly requested provider is used when it is registered;
// a requested but unregistered provider is logged and ignored, after which
// the registry scans the fixed fallback order and takes the first registered
// client. With no registered clients at all, ErrNoProviderAvailable.
//
// A failed call is terminal: the error is wrapped in ProviderError and no
// other provider is tried.
func (r *Registry) Dispatch(ctx context.Context, prompt Prompt, requested Provider) (string, Provider, error) {
	selected, ok := r.pick(requested)
	if !ok {
		r.logger.Error("llm.dispatch.no_provider")
		return "", "", common.ErrNoProviderAvailable
	}

	r.logger.Info("llm.dispatch.start",
		"provider", selected,
		"prompt_chars", utf8.RuneCountInString(prompt.User),
		"truncated", prompt.Truncated,
	)

	start := time.Now()
	out, err := r.clients[selected].Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		r.logger.Error("llm.dispatch.failed",
			"provider", selected,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return "", selected, &common.ProviderError{Provider: string(selected), Err: err}
	}

	r.logger.Info("llm.dispatch.done",
		"provider", selected,
		"duration_ms", time.Since(start).Milliseconds(),
		"output_chars", len(out),
	)
	return out, selected, nil
}

func (r *Registry) pick(requested Provider) (Provider, bool) {
	if requested != "" {
		if _, ok := r.clients[requested]; ok {
			return requested, true
		}
		r.logger.Warn("llm.dispatch.requested_unavailable", "provider", requested)
	}
	for _, p := range dispatchOrder {
		if _, ok := r.clients[p]; ok {
			return p, true
		}
	}
	return "", false
}
