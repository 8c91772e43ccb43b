package llm

import (
	"context"
	"fmt"
)

// Advisor answers the valuation questions through a Completer
type Advisor struct {
	completer      Completer
	includeContext bool
}

// NewAdvisor wraps completer. includeContext switches every prompt to its extended variant.
func NewAdvisor(completer Completer, includeContext bool) *Advisor {
	return &Advisor{completer: completer, includeContext: includeContext}
}

// ResolveGeneration asks for the generation year range of a vehicle. The raw answer is returned,
// the caller parses it.
func (a *Advisor) ResolveGeneration(ctx context.Context, make, model string, year int, city string) (string, error) {
	return a.Ask(ctx, KindGeneration, Vars{Year: year, Make: make, Model: model, City: city})
}

// Ask renders kind with vars and returns the model's answer
func (a *Advisor) Ask(ctx context.Context, kind Kind, vars Vars) (string, error) {
	p, err := Build(kind, vars, BuildOptions{IncludeContext: a.includeContext})
	if err != nil {
		return "", err
	}
	answer, err := a.completer.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to ask %s: %w", kind, err)
	}
	return answer, nil
}

// Insights asks for free-text commentary. kind must be KindPriceAnalysis or KindMarketInsights.
func (a *Advisor) Insights(ctx context.Context, kind Kind, vars Vars) (string, error) {
	if kind == KindGeneration {
		return "", fmt.Errorf("%s is not an insight prompt", kind)
	}
	return a.Ask(ctx, kind, vars)
}
