package promptsvc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

// Fallback answers returned when no API key is configured or the provider fails.
// The texts are part of the API contract and must stay stable.
const (
	AdviceFallback = "1. Choose products with minimal packaging. " +
		"2. Combine your purchases into fewer deliveries. " +
		"3. Prefer reusable items over single-use ones."
	ApologyFallback = "Sorry, I am unable to answer that right now. Please try again later."
)

// promptKind classifies a prompt for fallback selection.
type promptKind int

const (
	kindUnknown promptKind = iota
	kindEstimate
	kindAdvice
)

// provider is the external generative model, consumed as text in, text out.
type provider interface {
	HasAPIKey() bool
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PromptService proxies prompts to a generative model with a local fallback.
type PromptService struct {
	provider provider
}

// option is a function that configures the PromptService.
type option func(*PromptService)

// MustNewPromptService creates a new PromptService.
func MustNewPromptService(opts ...option) *PromptService {
	s := &PromptService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.provider == nil {
		panic("promptsvc: no provider configured")
	}

	return s
}

// WithProvider sets the generative model provider for the PromptService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProvider(p provider) option {
	return func(s *PromptService) {
		s.provider = p
	}
}

// HasAPIKey reports whether the underlying provider has a usable credential.
func (s *PromptService) HasAPIKey() bool {
	return s.provider.HasAPIKey()
}

// Answer produces a response for the prompt. When the provider is uncredentialed
// the fallback answer is returned as a success. When a credentialed provider call
// fails, the two recognized prompt shapes still report success with a synthetic
// answer; only the unrecognized shape surfaces the failure, together with the
// apology text. Existing clients depend on this asymmetry.
func (s *PromptService) Answer(ctx context.Context, prompt string) (string, error) {
	if !s.provider.HasAPIKey() {
		return fallback(prompt), nil
	}

	text, err := s.provider.GenerateContent(ctx, prompt)
	if err == nil {
		return text, nil
	}

	slog.Error("Error calling generative model", "error", err)

	if classify(prompt) != kindUnknown {
		return fallback(prompt), nil
	}

	return ApologyFallback, fmt.Errorf("failed to generate content: %w", err)
}

// classify selects the fallback answer by substring matching on the prompt.
func classify(prompt string) promptKind {
	switch {
	case strings.Contains(prompt, "Estimate the carbon footprint"):
		return kindEstimate
	case strings.Contains(prompt, "suggestions to reduce carbon footprint"):
		return kindAdvice
	default:
		return kindUnknown
	}
}

// fallback fabricates an answer locally for the given prompt.
func fallback(prompt string) string {
	switch classify(prompt) {
	case kindEstimate:
		return fmt.Sprintf("%.2f", 0.5+rand.Float64()*5.0)
	case kindAdvice:
		return AdviceFallback
	default:
		return ApologyFallback
	}
}
