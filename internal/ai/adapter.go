package ai

import (
	"context"
	"fmt"

	"alcyxob/fitness-planner/internal/domain"
)

const (
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

// Adapter turns preferences or an existing plan into a prompt, sends it once
// and parses the answer. It does not retry; wrap its Completer for that.
type Adapter struct {
	completer   Completer
	rules       domain.ValidationRules
	maxTokens   int
	temperature float64
}

type AdapterOption func(*Adapter)

// WithRules sets the thresholds quoted in the safety section of the prompt.
func WithRules(r domain.ValidationRules) AdapterOption {
	return func(a *Adapter) { a.rules = r }
}

func WithMaxTokens(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

func WithTemperature(t float64) AdapterOption {
	return func(a *Adapter) {
		if t >= 0 {
			a.temperature = t
		}
	}
}

func NewAdapter(c Completer, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		completer:   c,
		rules:       domain.DefaultValidationRules(),
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model names the model behind the adapter, for plan metadata.
func (a *Adapter) Model() string {
	if a == nil || a.completer == nil {
		return ""
	}
	return a.completer.Model()
}

// Generate asks for a full plan fragment, personalising base when given.
func (a *Adapter) Generate(ctx context.Context, prefs domain.UserPreferences, base *BaseTemplate) (*domain.PlanFragment, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.complete(ctx, GenerationPrompt(prefs, base, a.rules))
}

// Regenerate asks for an adjusted version of plan that honours constraints.
func (a *Adapter) Regenerate(ctx context.Context, plan *domain.WeeklyPlan, constraints domain.RegenerationConstraints) (*domain.PlanFragment, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.complete(ctx, RegenerationPrompt(plan, constraints))
}

func (a *Adapter) ready() error {
	if a == nil || a.completer == nil {
		return &ConfigurationError{Setting: "ai.api_key"}
	}
	return nil
}

func (a *Adapter) complete(ctx context.Context, prompt string) (*domain.PlanFragment, error) {
	text, err := a.completer.Complete(ctx, CompletionRequest{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("ai completion: %w", err)
	}
	return ParseFragment(text)
}
