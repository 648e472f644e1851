package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies one of the interchangeable LLM backends.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// dispatchOrder is the fixed fallback priority when no provider is
// explicitly requested. Preserved as-is: changing it changes observable
// behavior under partial configuration.
var dispatchOrder = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini}

// ParseProvider normalizes a user-supplied provider name. An empty input is
// valid and means "no preference".
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

// Shared generation parameters. Extraction wants near-deterministic output
// with a bounded response size; every adapter applies both.
const (
	Temperature     = 0.1
	MaxOutputTokens = 4000
)

// ChatClient is the thin adapter each provider implements: translate one
// (system, user) instruction pair into the provider's request shape and
// return the single text completion.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
